package todo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// UpdateTodo applies a partial update. A Priority label remaps the todo
// to that quadrant's canonical position.
func (s *Service) UpdateTodo(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.TodoUpdateParams{
		Description: input.Description,
		DueDate:     input.DueDate,
		PositionX:   input.PositionX,
		PositionY:   input.PositionY,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		params.Title = &title
	}
	if input.Priority != "" {
		x, y := domain.Priority(input.Priority).Position()
		params.PositionX = &x
		params.PositionY = &y
	}
	if input.ClearDueDate {
		var zero time.Time
		params.DueDate = &zero
	}

	todo, err := s.todos.Update(ctx, userID, input.TodoID, params)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo updated",
		slog.String("user_id", userID.String()),
		slog.String("todo_id", todo.ID.String()),
	)

	return todo, nil
}

// MoveTodo repositions a todo on the matrix (drag and drop).
func (s *Service) MoveTodo(ctx context.Context, input MoveTodoInput) (*domain.Todo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	todo, err := s.todos.Move(ctx, userID, input.TodoID, input.PositionX, input.PositionY)
	if err != nil {
		return nil, fmt.Errorf("move todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo moved",
		slog.String("user_id", userID.String()),
		slog.String("todo_id", todo.ID.String()),
		slog.String("priority", todo.Priority().String()),
	)

	return todo, nil
}
