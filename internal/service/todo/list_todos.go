package todo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// ListTodos returns all of the user's todos, most recently created first.
func (s *Service) ListTodos(ctx context.Context) ([]*domain.Todo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	todos, err := s.todos.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

// GetTodo returns a single todo by ID.
func (s *Service) GetTodo(ctx context.Context, todoID uuid.UUID) (*domain.Todo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	todo, err := s.todos.GetByID(ctx, userID, todoID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}

	return todo, nil
}
