package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"tradedesk/config"
)

// ChatModel is the shared quick-think model every non-tool-using agent
// node runs on. InitChatModel must be called before the graph compiles.
var ChatModel model.ChatModel

func InitChatModel(ctx context.Context, cfg *config.Config) error {
	cm, err := NewChatModel(ctx, cfg)
	if err != nil {
		return err
	}
	ChatModel = cm
	return nil
}

// NewChatModel builds a chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ChatModel, error) {
	switch cfg.LLMProvider {
	case "deepseek":
		cm, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.QuickThinkLLM,
			MaxTokens: 8192,
		})
		if err != nil {
			return nil, fmt.Errorf("create deepseek model: %w", err)
		}
		return cm, nil
	case "openai":
		maxTokens := 8192
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BackendURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.QuickThinkLLM,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return cm, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

// NewToolCallingModel builds a model with the given tools bound, for
// the analyst nodes that drive tool loops.
func NewToolCallingModel(ctx context.Context, cfg *config.Config, toolInfos []*schema.ToolInfo) (model.ChatModel, error) {
	cm, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(toolInfos) > 0 {
		if err := cm.BindTools(toolInfos); err != nil {
			return nil, fmt.Errorf("bind tools: %w", err)
		}
	}
	return cm, nil
}
