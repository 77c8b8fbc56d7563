package note

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	tagpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/tag"
	"github.com/daybookhq/daybook-backend/internal/domain"
)

const (
	MaxTitleLen    = 200
	MaxContentLen  = 50000
	MaxTagsPerNote = 20
)

type noteRepo interface {
	GetByID(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error)
	ListTrashed(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error)
	Create(ctx context.Context, userID uuid.UUID, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	SoftDelete(ctx context.Context, userID, noteID uuid.UUID) error
	Restore(ctx context.Context, userID, noteID uuid.UUID) error
	HardDelete(ctx context.Context, userID, noteID uuid.UUID) error
}

type tagRepo interface {
	FindByNamesInsensitive(ctx context.Context, userID uuid.UUID, names []string) ([]*domain.Tag, error)
	ListByNoteID(ctx context.Context, noteID uuid.UUID) ([]*domain.Tag, error)
	ListByNoteIDs(ctx context.Context, noteIDs []uuid.UUID) ([]tagpg.TagWithNoteID, error)
	ReplaceNoteTags(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides note management operations.
type Service struct {
	notes noteRepo
	tags  tagRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new Note service.
func NewService(
	log *slog.Logger,
	notes noteRepo,
	tags tagRepo,
	tx txManager,
) *Service {
	return &Service{
		notes: notes,
		tags:  tags,
		tx:    tx,
		log:   log.With("service", "note"),
	}
}

// resolveTagIDs maps tag names to the owner's existing tags,
// case-insensitively. Names without a match are skipped.
func (s *Service) resolveTagIDs(ctx context.Context, userID uuid.UUID, names []string) ([]uuid.UUID, []domain.Tag, error) {
	if len(names) == 0 {
		return nil, []domain.Tag{}, nil
	}

	matched, err := s.tags.FindByNamesInsensitive(ctx, userID, names)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, 0, len(matched))
	tags := make([]domain.Tag, 0, len(matched))
	for _, t := range matched {
		ids = append(ids, t.ID)
		tags = append(tags, *t)
	}
	return ids, tags, nil
}

// hydrateTags attaches tags to each note in one batch query.
func (s *Service) hydrateTags(ctx context.Context, notes []*domain.Note) error {
	if len(notes) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}

	rows, err := s.tags.ListByNoteIDs(ctx, ids)
	if err != nil {
		return err
	}

	byNote := make(map[uuid.UUID][]domain.Tag, len(notes))
	for _, row := range rows {
		byNote[row.NoteID] = append(byNote[row.NoteID], row.Tag)
	}
	for _, n := range notes {
		if tags, ok := byNote[n.ID]; ok {
			n.Tags = tags
		} else {
			n.Tags = []domain.Tag{}
		}
	}
	return nil
}
