// Package agent turns free-text commands into structured mutations via a
// tool-calling language model. One invocation assembles a bounded snapshot
// of the owner's data, composes a system prompt, hands the model a registry
// of owner-scoped tools, and returns the model's final text together with
// every tool result in invocation order.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/llm"
	"github.com/daybookhq/daybook-backend/internal/metrics"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

type noteStore interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Note, error)
	FindByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Note, error)
	Create(ctx context.Context, userID uuid.UUID, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	HardDelete(ctx context.Context, userID, noteID uuid.UUID) error
}

type reminderStore interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Reminder, error)
	FindPendingByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Reminder, error)
	Create(ctx context.Context, userID uuid.UUID, rem *domain.Reminder) (*domain.Reminder, error)
	UpdateStatus(ctx context.Context, userID, reminderID uuid.UUID, from, to domain.ReminderStatus) error
}

type todoStore interface {
	ListPending(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Todo, error)
	FindByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error)
	FindPendingByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error)
	Create(ctx context.Context, userID uuid.UUID, todo *domain.Todo) (*domain.Todo, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, params domain.TodoUpdateParams) (*domain.Todo, error)
	Complete(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error)
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}

type tagStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	FindByNamesInsensitive(ctx context.Context, userID uuid.UUID, names []string) ([]*domain.Tag, error)
	ReplaceNoteTags(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error
}

type integrationStore interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Integration, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// modelClient drives one model invocation, running the tool loop
// internally against the supplied executor.
type modelClient interface {
	Complete(ctx context.Context, req llm.Request, exec llm.ToolExecutor) (llm.Reply, error)
}

// calendarConnector supplies external calendar tool contracts and proxies
// their invocations for a connected account.
type calendarConnector interface {
	ListTools(ctx context.Context, accountID string) ([]domain.ToolSpec, error)
	CallTool(ctx context.Context, accountID, name string, args map[string]any) (string, error)
}

// Agent is the command orchestrator.
type Agent struct {
	notes        noteStore
	reminders    reminderStore
	todos        todoStore
	tags         tagStore
	integrations integrationStore
	tx           txManager
	model        modelClient
	calendar     calendarConnector
	resolve      resolver
	metrics      *metrics.Metrics
	log          *slog.Logger
}

// New creates an Agent. The calendar connector may be nil when no bridge
// is configured; calendar requests then get the connect-first guidance.
func New(
	log *slog.Logger,
	notes noteStore,
	reminders reminderStore,
	todos todoStore,
	tags tagStore,
	integrations integrationStore,
	tx txManager,
	model modelClient,
	calendar calendarConnector,
	m *metrics.Metrics,
) *Agent {
	return &Agent{
		notes:        notes,
		reminders:    reminders,
		todos:        todos,
		tags:         tags,
		integrations: integrations,
		tx:           tx,
		model:        model,
		calendar:     calendar,
		resolve:      resolver{notes: notes, reminders: reminders, todos: todos},
		metrics:      m,
		log:          log.With("service", "agent"),
	}
}

// Process handles one free-text command for the given owner. The timezone
// is an IANA name; empty or unknown names fall back to the process default.
// Tool-level failures surface as error-tagged entries in the response;
// snapshot assembly and model invocation failures are fatal.
func (a *Agent) Process(ctx context.Context, userID uuid.UUID, input, timezone string) (*domain.AgentResponse, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.NewValidationError("text", "required")
	}

	snap, err := a.buildSnapshot(ctx, userID)
	if err != nil {
		a.metrics.IncAgentInvocation(metrics.OutcomeError)
		return nil, fmt.Errorf("build context snapshot: %w", err)
	}

	reg, calendarReady := a.buildRegistry(ctx, userID, snap)
	system := composePrompt(snap, time.Now(), a.location(timezone), calendarReady)

	start := time.Now()
	reply, err := a.model.Complete(ctx, llm.Request{
		System: system,
		Input:  input,
		Tools:  reg.Specs(),
	}, reg)
	if err != nil {
		a.metrics.ObserveModelDuration(metrics.OutcomeError, time.Since(start))
		a.metrics.IncAgentInvocation(metrics.OutcomeError)
		return nil, fmt.Errorf("model invocation: %w", err)
	}
	a.metrics.ObserveModelDuration(metrics.OutcomeOK, time.Since(start))
	a.metrics.IncAgentInvocation(metrics.OutcomeOK)

	a.log.InfoContext(ctx, "command processed",
		slog.String("user_id", userID.String()),
		slog.String("channel", ctxutil.ChannelFromCtx(ctx)),
		slog.Int("tool_calls", len(reply.ToolResults)),
	)

	return &domain.AgentResponse{
		Message:     reply.Text,
		ToolResults: reply.ToolResults,
	}, nil
}

// buildRegistry assembles the static tools and, when the owner has an
// active calendar integration, merges in the connector's tools. A connector
// fetch failure is logged and leaves the registry static-only. The second
// return value reports whether calendar tools ended up registered.
func (a *Agent) buildRegistry(ctx context.Context, userID uuid.UUID, snap *Snapshot) (*Registry, bool) {
	reg := newRegistry(a.log, a.metrics)
	a.registerNoteTools(reg, userID)
	a.registerReminderTools(reg, userID)
	a.registerTodoTools(reg, userID)

	integ := snap.CalendarIntegration()
	if integ == nil || a.calendar == nil {
		return reg, false
	}

	accountID := ""
	if integ.ConnectedAccountID != nil {
		accountID = *integ.ConnectedAccountID
	}

	tools, err := a.calendar.ListTools(ctx, accountID)
	if err != nil {
		a.log.WarnContext(ctx, "calendar tools unavailable, using static tools only",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
		return reg, false
	}

	for _, spec := range tools {
		a.registerCalendarTool(reg, accountID, spec)
	}
	return reg, len(tools) > 0
}

func (a *Agent) registerCalendarTool(reg *Registry, accountID string, spec domain.ToolSpec) {
	reg.register(spec, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		out, err := a.calendar.CallTool(ctx, accountID, spec.Name, args)
		if err != nil {
			return domain.NewToolError(spec.Name, err.Error())
		}
		return domain.NewToolSuccess(spec.Name, out, nil)
	})
}

func (a *Agent) location(timezone string) *time.Location {
	if timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		a.log.Warn("unknown timezone, using process default", slog.String("timezone", timezone))
		return time.Local
	}
	return loc
}
