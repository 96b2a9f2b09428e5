package agents

import (
	"context"
	"log"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"tradedesk/internal/tools"
	"tradedesk/models"
)

// NewToolsNode builds a tool-execution node: it runs every pending
// tool call on the last message and appends the results to the shared
// message log, so the calling analyst sees them on its next turn.
func NewToolsNode[I, O any](ctx context.Context, tk *tools.Toolkit) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	run := func(ctx context.Context, input I, opts ...any) (output string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			if len(state.Messages) == 0 {
				return nil
			}
			last := state.Messages[len(state.Messages)-1]
			if last == nil || len(last.ToolCalls) == 0 {
				return nil
			}
			for _, call := range last.ToolCalls {
				result, err := tk.Invoke(ctx, call.Function.Name, call.Function.Arguments)
				if err != nil {
					log.Printf("[Tools] %s failed: %v", call.Function.Name, err)
					result = "tool error: " + err.Error()
				}
				state.Messages = append(state.Messages, schema.ToolMessage(result, call.ID))
			}
			return nil
		})
		return "done", err
	}

	_ = g.AddLambdaNode("run", compose.InvokableLambdaWithOption(run))
	_ = g.AddEdge(compose.START, "run")
	_ = g.AddEdge("run", compose.END)

	return g
}

// NewMsgClearNode builds a message-clear node. It lifts the last
// assistant reply off the message log, hands it to finalize for
// report bookkeeping, and then wipes the log so the next agent starts
// from a clean conversation.
func NewMsgClearNode[I, O any](ctx context.Context, finalize func(state *models.TraversalState, content string)) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()

	run := func(ctx context.Context, input I, opts ...any) (output string, err error) {
		err = compose.ProcessState[*models.TraversalState](ctx, func(_ context.Context, state *models.TraversalState) error {
			content := lastAssistantContent(state)
			if finalize != nil {
				finalize(state, content)
			}
			state.Messages = []*schema.Message{}
			return nil
		})
		return "cleared", err
	}

	_ = g.AddLambdaNode("run", compose.InvokableLambdaWithOption(run))
	_ = g.AddEdge(compose.START, "run")
	_ = g.AddEdge("run", compose.END)

	return g
}

// lastAssistantContent walks the message log backwards for the most
// recent assistant reply without pending tool calls.
func lastAssistantContent(state *models.TraversalState) string {
	for i := len(state.Messages) - 1; i >= 0; i-- {
		msg := state.Messages[i]
		if msg == nil || msg.Role != schema.Assistant {
			continue
		}
		if len(msg.ToolCalls) > 0 {
			continue
		}
		if content := strings.TrimSpace(msg.Content); content != "" {
			return content
		}
	}
	return ""
}
