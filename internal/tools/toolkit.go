package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Toolkit is a named set of invokable tools, looked up by the tool
// nodes when a model emits tool calls.
type Toolkit struct {
	byName map[string]tool.InvokableTool
	infos  []*schema.ToolInfo
}

func NewToolkit(ctx context.Context, invokables ...tool.InvokableTool) (*Toolkit, error) {
	tk := &Toolkit{byName: make(map[string]tool.InvokableTool, len(invokables))}
	for _, t := range invokables {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		tk.byName[info.Name] = t
		tk.infos = append(tk.infos, info)
	}
	return tk, nil
}

// Infos returns the tool descriptions to bind onto a chat model.
func (tk *Toolkit) Infos() []*schema.ToolInfo {
	return tk.infos
}

// Invoke runs one named tool with JSON-encoded arguments.
func (tk *Toolkit) Invoke(ctx context.Context, name, argumentsJSON string) (string, error) {
	t, ok := tk.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	return t.InvokableRun(ctx, argumentsJSON)
}
