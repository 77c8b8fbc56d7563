package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// resolver finds the single entity a free-text query refers to: the most
// recent owner-scoped row whose searchable fields contain the query,
// case-insensitively. Ambiguous queries silently pick the first match.
type resolver struct {
	notes     noteStore
	reminders reminderStore
	todos     todoStore
}

func (r *resolver) note(ctx context.Context, userID uuid.UUID, query string) (*domain.Note, error) {
	matches, err := r.notes.FindByText(ctx, userID, query, 1)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no note matching %q: %w", query, domain.ErrNotFound)
	}
	return matches[0], nil
}

func (r *resolver) pendingReminder(ctx context.Context, userID uuid.UUID, query string) (*domain.Reminder, error) {
	matches, err := r.reminders.FindPendingByText(ctx, userID, query, 1)
	if err != nil {
		return nil, fmt.Errorf("search reminders: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no pending reminder matching %q: %w", query, domain.ErrNotFound)
	}
	return matches[0], nil
}

func (r *resolver) pendingTodo(ctx context.Context, userID uuid.UUID, query string) (*domain.Todo, error) {
	matches, err := r.todos.FindPendingByText(ctx, userID, query, 1)
	if err != nil {
		return nil, fmt.Errorf("search todos: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no pending todo matching %q: %w", query, domain.ErrNotFound)
	}
	return matches[0], nil
}

// todo matches any status; deletion is allowed on completed rows too.
func (r *resolver) todo(ctx context.Context, userID uuid.UUID, query string) (*domain.Todo, error) {
	matches, err := r.todos.FindByText(ctx, userID, query, 1)
	if err != nil {
		return nil, fmt.Errorf("search todos: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no todo matching %q: %w", query, domain.ErrNotFound)
	}
	return matches[0], nil
}
