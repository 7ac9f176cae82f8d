package executor

import (
	"context"
	"fmt"

	"github.com/smartserve/driftguard-assistant/internal/domain"
	"github.com/smartserve/driftguard-assistant/internal/observability"
)

// Resolver looks up a capability by name. Satisfied by *registry.Registry.
type Resolver interface {
	Resolve(name string) (domain.Capability, error)
}

// Executor runs the tool calls requested by the model. One failing call must
// not prevent its siblings from completing, and must not crash the cycle:
// every failure is converted into a failure-tagged result. Retry policy, if
// any, belongs to the capability's own remote-call wrapper, not here.
type Executor struct {
	resolver Resolver
}

func New(resolver Resolver) *Executor {
	return &Executor{resolver: resolver}
}

// Execute runs each requested call independently and returns one result per
// request, in request order.
func (e *Executor) Execute(ctx context.Context, calls []domain.ToolCall) []domain.ToolResult {
	log := observability.LoggerFromContext(ctx)

	results := make([]domain.ToolResult, 0, len(calls))
	for _, call := range calls {
		result := e.executeOne(ctx, call)
		if reason, failed := result.Failure(); failed {
			log.Warn("tool call failed", "tool", call.Name, "reason", reason)
		}
		results = append(results, result)
	}
	return results
}

func (e *Executor) executeOne(ctx context.Context, call domain.ToolCall) (result domain.ToolResult) {
	// A panicking capability is recorded like any other failure.
	defer func() {
		if r := recover(); r != nil {
			result = domain.ToolFailure(call.Name, fmt.Sprintf("panic: %v", r))
		}
	}()

	capability, err := e.resolver.Resolve(call.Name)
	if err != nil {
		return domain.ToolFailure(call.Name, err.Error())
	}

	output, err := capability.Call(ctx, call.Args)
	if err != nil {
		return domain.ToolFailure(call.Name, err.Error())
	}

	return domain.ToolSuccess(call.Name, output)
}
