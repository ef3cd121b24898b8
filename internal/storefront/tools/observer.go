package tools

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/shopeasy/storefront/pkg/logger"
)

// newToolHandler builds a typed ToolCallbackHandler (not yet wrapped).
func newToolHandler() *callbackHelper.ToolCallbackHandler {
	return &callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *tool.CallbackInput) context.Context {
			logx.Debug().Str("tool", info.Name).Str("args", input.ArgumentsInJSON).Msg("tool start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *tool.CallbackOutput) context.Context {
			logx.Debug().Str("tool", info.Name).Int("bytes", len(output.Response)).Msg("tool end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Warn().Err(err).Str("tool", info.Name).Msg("tool execution failed")
			return ctx
		},
	}
}

// NewToolCallbacks constructs a callbacks.Handler that logs tool lifecycle events.
func NewToolCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Tool(newToolHandler()).
		Handler()
}

// Invoke runs t outside of a graph with the given handlers attached, so a
// direct call reports the same lifecycle events a graph run would.
func Invoke(ctx context.Context, t tool.InvokableTool, argumentsInJSON string, handlers ...einocb.Handler) (string, error) {
	info, err := t.Info(ctx)
	if err != nil {
		return "", err
	}
	ctx = einocb.InitCallbacks(ctx, &einocb.RunInfo{
		Name:      info.Name,
		Type:      "CatalogTool",
		Component: components.ComponentOfTool,
	}, handlers...)

	ctx = einocb.OnStart(ctx, &tool.CallbackInput{ArgumentsInJSON: argumentsInJSON})
	out, err := t.InvokableRun(ctx, argumentsInJSON)
	if err != nil {
		einocb.OnError(ctx, err)
		return "", err
	}
	einocb.OnEnd(ctx, &tool.CallbackOutput{Response: out})
	return out, nil
}
