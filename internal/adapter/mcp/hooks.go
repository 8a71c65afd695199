package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/schemalens/schemalens/internal/core/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// callState tracks one in-flight tool call from the before hook to the
// after/error hook that closes it out.
type callState struct {
	tool        string
	environment string
	start       time.Time
	span        trace.Span
}

// ToolCallHooks wires logging, spans, and duration metrics around every
// tool call. Each log line and span carries the tool name and the target
// environment, so a noisy production analysis is distinguishable from a
// development one without reading payloads.
func ToolCallHooks(logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *server.Hooks {
	hooks := &server.Hooks{}
	var calls sync.Map // request id -> *callState

	hooks.AddBeforeCallTool(func(ctx context.Context, id any, req *mcp.CallToolRequest) {
		state := &callState{
			tool:        req.Params.Name,
			environment: environmentArg(req),
			start:       time.Now(),
		}

		if tracer != nil {
			_, span := tracer.Start(ctx, "mcp.tool."+state.tool,
				trace.WithAttributes(
					attribute.String("mcp.tool", state.tool),
					attribute.String("schemalens.environment", state.environment),
				),
			)
			state.span = span
		}

		calls.Store(id, state)
	})

	hooks.AddAfterCallTool(func(ctx context.Context, id any, req *mcp.CallToolRequest, result any) {
		state := loadState(&calls, id)
		if state == nil {
			state = &callState{tool: req.Params.Name, environment: environmentArg(req), start: time.Now()}
		}

		isErr := false
		if r, ok := result.(*mcp.CallToolResult); ok {
			isErr = r.IsError
		}
		finishCall(ctx, logger, inst, state, isErr, nil)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		state := loadState(&calls, id)
		if state == nil {
			// Errors outside tool calls (bad framing, unknown method)
			// have no call state and nothing to measure.
			return
		}
		finishCall(ctx, logger, inst, state, true, err)
	})

	return hooks
}

func loadState(calls *sync.Map, id any) *callState {
	v, ok := calls.LoadAndDelete(id)
	if !ok {
		return nil
	}
	return v.(*callState)
}

func finishCall(ctx context.Context, logger *slog.Logger, inst port.Instrumentation, state *callState, isErr bool, err error) {
	duration := time.Since(state.start)

	level := slog.LevelInfo
	if isErr {
		level = slog.LevelError
	}
	attrs := []slog.Attr{
		slog.String("rpc.method", "tools/call"),
		slog.String("mcp.tool", state.tool),
		slog.String("environment", state.environment),
		slog.Duration("duration", duration),
		slog.Bool("error", isErr),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error.message", err.Error()))
	}
	logger.LogAttrs(ctx, level, "tool call", attrs...)

	if inst != nil {
		inst.RecordToolDuration(ctx, float64(duration.Milliseconds()))
	}

	if state.span != nil {
		if err != nil {
			state.span.RecordError(err)
			state.span.SetStatus(codes.Error, err.Error())
		} else if isErr {
			state.span.RecordError(fmt.Errorf("tool %s returned error", state.tool))
			state.span.SetStatus(codes.Error, "tool returned error")
		}
		state.span.End()
	}
}

// environmentArg pulls the environment argument out of a tool request for
// observability attributes. Missing or mistyped values are the handler's
// problem; here they just log as empty.
func environmentArg(req *mcp.CallToolRequest) string {
	if req == nil {
		return ""
	}
	env, _ := req.GetArguments()["environment"].(string)
	return env
}
