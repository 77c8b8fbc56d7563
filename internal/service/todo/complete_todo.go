package todo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// CompleteTodo marks a pending todo done and stamps completed_at.
// Completing an already completed todo returns domain.ErrNotFound.
func (s *Service) CompleteTodo(ctx context.Context, todoID uuid.UUID) (*domain.Todo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	todo, err := s.todos.Complete(ctx, userID, todoID)
	if err != nil {
		return nil, fmt.Errorf("complete todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo completed",
		slog.String("user_id", userID.String()),
		slog.String("todo_id", todoID.String()),
	)

	return todo, nil
}

// ReopenTodo moves a completed todo back to pending and clears completed_at.
func (s *Service) ReopenTodo(ctx context.Context, todoID uuid.UUID) (*domain.Todo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	todo, err := s.todos.Reopen(ctx, userID, todoID)
	if err != nil {
		return nil, fmt.Errorf("reopen todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo reopened",
		slog.String("user_id", userID.String()),
		slog.String("todo_id", todoID.String()),
	)

	return todo, nil
}

// DeleteTodo permanently removes a todo regardless of status.
func (s *Service) DeleteTodo(ctx context.Context, todoID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.todos.Delete(ctx, userID, todoID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo deleted",
		slog.String("user_id", userID.String()),
		slog.String("todo_id", todoID.String()),
	)

	return nil
}
