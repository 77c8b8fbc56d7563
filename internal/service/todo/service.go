package todo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
)

type todoRepo interface {
	GetByID(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error)
	Create(ctx context.Context, userID uuid.UUID, todo *domain.Todo) (*domain.Todo, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, params domain.TodoUpdateParams) (*domain.Todo, error)
	Complete(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error)
	Reopen(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error)
	Move(ctx context.Context, userID, todoID uuid.UUID, x, y float64) (*domain.Todo, error)
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}

// Service provides todo management operations.
type Service struct {
	todos todoRepo
	log   *slog.Logger
}

// NewService creates a new Todo service.
func NewService(
	log *slog.Logger,
	todos todoRepo,
) *Service {
	return &Service{
		todos: todos,
		log:   log.With("service", "todo"),
	}
}

// validPosition reports whether a matrix coordinate is on the board.
func validPosition(v float64) bool {
	return v >= 0 && v <= 100
}
