package todo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// CreateTodo creates a pending todo placed on the Eisenhower matrix.
func (s *Service) CreateTodo(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var x, y float64
	if input.PositionX != nil && input.PositionY != nil {
		x, y = *input.PositionX, *input.PositionY
	} else {
		x, y = domain.ParsePriority(input.Priority).Position()
	}

	todo, err := s.todos.Create(ctx, userID, &domain.Todo{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      domain.TodoStatusPending,
		PositionX:   x,
		PositionY:   y,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo created",
		slog.String("user_id", userID.String()),
		slog.String("todo_id", todo.ID.String()),
		slog.String("priority", todo.Priority().String()),
	)

	return todo, nil
}
