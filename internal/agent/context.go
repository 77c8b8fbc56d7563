package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// Snapshot bounds so the prompt stays small for prolific users.
const (
	snapshotNoteLimit     = 20
	snapshotReminderLimit = 20
	snapshotTodoLimit     = 20
	notePreviewChars      = 100
)

// Snapshot is the read-only view of an owner's data captured at the start
// of an invocation. The model sees exactly this and nothing fresher.
type Snapshot struct {
	Notes        []*domain.Note
	Reminders    []*domain.Reminder
	Todos        []*domain.Todo
	Tags         []*domain.Tag
	Integrations []*domain.Integration
}

// CalendarIntegration returns the owner's active calendar integration,
// or nil when none is connected.
func (s *Snapshot) CalendarIntegration() *domain.Integration {
	for _, integ := range s.Integrations {
		if integ.Provider == domain.ProviderCalendar && integ.IsActive() {
			return integ
		}
	}
	return nil
}

// buildSnapshot fans the five reads out concurrently. All must succeed;
// a partial snapshot would let the model reason over missing data, so the
// first failure aborts the invocation.
func (a *Agent) buildSnapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		notes, err := a.notes.ListRecent(gctx, userID, snapshotNoteLimit)
		if err != nil {
			return fmt.Errorf("load notes: %w", err)
		}
		snap.Notes = notes
		return nil
	})

	g.Go(func() error {
		reminders, err := a.reminders.ListRecent(gctx, userID, snapshotReminderLimit)
		if err != nil {
			return fmt.Errorf("load reminders: %w", err)
		}
		snap.Reminders = reminders
		return nil
	})

	g.Go(func() error {
		todos, err := a.todos.ListPending(gctx, userID, snapshotTodoLimit)
		if err != nil {
			return fmt.Errorf("load todos: %w", err)
		}
		snap.Todos = todos
		return nil
	})

	g.Go(func() error {
		tags, err := a.tags.List(gctx, userID)
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		snap.Tags = tags
		return nil
	})

	g.Go(func() error {
		integrations, err := a.integrations.ListActive(gctx, userID)
		if err != nil {
			return fmt.Errorf("load integrations: %w", err)
		}
		snap.Integrations = integrations
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
