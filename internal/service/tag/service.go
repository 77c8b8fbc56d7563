package tag

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

const MaxNameLen = 50

type tagRepo interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	Create(ctx context.Context, userID uuid.UUID, tag *domain.Tag) (*domain.Tag, error)
	Update(ctx context.Context, userID, tagID uuid.UUID, params domain.TagUpdateParams) (*domain.Tag, error)
	Delete(ctx context.Context, userID, tagID uuid.UUID) error
}

// Service provides tag management operations.
type Service struct {
	tags tagRepo
	log  *slog.Logger
}

// NewService creates a new Tag service.
func NewService(log *slog.Logger, tags tagRepo) *Service {
	return &Service{
		tags: tags,
		log:  log.With("service", "tag"),
	}
}
