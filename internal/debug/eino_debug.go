package debug

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/devops"

	"tradedesk/config"
)

// GraphDebugger exposes the eino devops visual debugger for the desk
// graph when enabled in the config.
type GraphDebugger struct {
	config *config.Config
	ctx    context.Context
}

func NewGraphDebugger(cfg *config.Config) *GraphDebugger {
	return &GraphDebugger{
		config: cfg,
		ctx:    context.Background(),
	}
}

func (d *GraphDebugger) Initialize() error {
	if !d.config.GraphDebugEnabled {
		return nil
	}

	if err := devops.Init(d.ctx); err != nil {
		return fmt.Errorf("failed to initialize graph debug plugin: %w", err)
	}

	if d.config.Debug {
		log.Printf("[GraphDebug] debug server listening at %s", d.GetDebugURL())
	}
	return nil
}

func (d *GraphDebugger) IsEnabled() bool {
	return d.config.GraphDebugEnabled
}

func (d *GraphDebugger) GetDebugURL() string {
	if !d.config.GraphDebugEnabled {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d", d.config.GraphDebugPort)
}
