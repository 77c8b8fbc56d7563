package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/metrics"
)

type toolFunc func(ctx context.Context, args map[string]any) domain.ToolExecutionResult

// Registry maps tool names to their contracts and execute functions for
// one invocation. It is built fresh per invocation because the tool set
// depends on the owner (tag vocabulary, calendar availability) and every
// handler is closed over the owner id.
type Registry struct {
	specs    []domain.ToolSpec
	handlers map[string]toolFunc
	log      *slog.Logger
	metrics  *metrics.Metrics
}

func newRegistry(log *slog.Logger, m *metrics.Metrics) *Registry {
	return &Registry{
		handlers: make(map[string]toolFunc),
		log:      log,
		metrics:  m,
	}
}

func (r *Registry) register(spec domain.ToolSpec, fn toolFunc) {
	r.specs = append(r.specs, spec)
	r.handlers[spec.Name] = fn
}

// Specs returns the tool contracts in registration order.
func (r *Registry) Specs() []domain.ToolSpec {
	return r.specs
}

// Execute runs one tool call. Failures, including panics inside a handler,
// become error-tagged results; a broken call never aborts its siblings.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result domain.ToolExecutionResult) {
	fn, ok := r.handlers[name]
	if !ok {
		r.metrics.IncToolExecution(name, metrics.OutcomeError)
		return domain.NewToolError(name, "unknown tool")
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.ErrorContext(ctx, "tool execution panic",
				slog.String("tool", name),
				slog.Any("panic", rec),
			)
			result = domain.NewToolError(name, fmt.Sprintf("internal error: %v", rec))
		}
		outcome := metrics.OutcomeOK
		if !result.Success {
			outcome = metrics.OutcomeError
		}
		r.metrics.IncToolExecution(name, outcome)
	}()

	return fn(ctx, args)
}
