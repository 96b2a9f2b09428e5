package tools

import (
	"context"
	"strings"
	"testing"

	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type echoInput struct {
	Text string `json:"text"`
}

type echoOutput struct {
	Echo string `json:"echo"`
}

func newEchoTool() *Toolkit {
	echo := t_utils.NewTool(
		&schema.ToolInfo{
			Name: "echo",
			Desc: "Echo the input back",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"text": {Type: "string", Desc: "Text to echo", Required: true},
			}),
		},
		func(ctx context.Context, input echoInput) (*echoOutput, error) {
			return &echoOutput{Echo: input.Text}, nil
		},
	)
	tk, err := NewToolkit(context.Background(), echo)
	if err != nil {
		panic(err)
	}
	return tk
}

func TestToolkitInvoke(t *testing.T) {
	tk := newEchoTool()

	result, err := tk.Invoke(context.Background(), "echo", `{"text":"hello"}`)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !strings.Contains(result, "hello") {
		t.Fatalf("result = %q, want it to contain %q", result, "hello")
	}
}

func TestToolkitUnknownTool(t *testing.T) {
	tk := newEchoTool()

	if _, err := tk.Invoke(context.Background(), "missing", "{}"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestToolkitInfos(t *testing.T) {
	tk := newEchoTool()

	infos := tk.Infos()
	if len(infos) != 1 || infos[0].Name != "echo" {
		t.Fatalf("infos = %+v", infos)
	}
}
