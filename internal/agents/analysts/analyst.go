package analysts

import (
	"context"
	"log"
	"path/filepath"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"tradedesk/config"
	"tradedesk/internal/agents"
	"tradedesk/internal/tools"
	"tradedesk/internal/utils"
	"tradedesk/models"
)

// newAnalystNode wires the shared analyst subgraph: load the role
// prompt with the current conversation, run the tool-bound model, and
// append its reply to the shared message log. Whether the reply opens
// a tool loop is decided by the branch attached to this node.
func newAnalystNode[I, O any](ctx context.Context, cfg *config.Config, promptPath string, tk *tools.Toolkit) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	chatModel, err := agents.NewToolCallingModel(ctx, cfg, tk.Infos())
	if err != nil {
		log.Printf("[Analysts] tool model unavailable, using shared model: %v", err)
		chatModel = agents.ChatModel
	}

	load := func(ctx context.Context, input I, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			ptl, err := utils.LoadPrompt(promptPath)
			if err != nil {
				return err
			}
			template := prompt.FromMessages(schema.FString,
				schema.SystemMessage(ptl),
				schema.MessagesPlaceholder("conversation", true),
			)
			output, err = template.Format(ctx, map[string]any{
				"ticker":       state.CurrentTicker(),
				"trade_date":   state.TradeDate,
				"conversation": state.Messages,
			})
			return err
		})
		return output, err
	}

	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(load))
	_ = g.AddChatModelNode("agent", chatModel)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(analystRouter))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)

	return g
}

func analystRouter(ctx context.Context, input *schema.Message, opts ...any) (output string, err error) {
	err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
		if input != nil {
			state.Messages = append(state.Messages, input)
		}
		return nil
	})
	return "ok", err
}

// writeReport persists one finished report under the results dir.
func writeReport(cfg *config.Config, state *models.TraversalState, fileName, content string) {
	if content == "" {
		return
	}
	dir := filepath.Join(cfg.ResultsDir, state.CurrentTicker(), state.TradeDate)
	if err := utils.WriteMarkdown(dir, fileName, content); err != nil {
		log.Printf("[Analysts] failed to write %s: %v", fileName, err)
	}
}
