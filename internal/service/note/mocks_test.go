package note

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	tagpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/tag"
	"github.com/daybookhq/daybook-backend/internal/domain"
)

// Manual mocks (moq-style with func fields)

var (
	_ noteRepo  = &mockNoteRepo{}
	_ tagRepo   = &mockTagRepo{}
	_ txManager = &mockTxManager{}
)

type mockNoteRepo struct {
	GetByIDFunc     func(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)
	ListFunc        func(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error)
	ListTrashedFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error)
	CreateFunc      func(ctx context.Context, userID uuid.UUID, note *domain.Note) (*domain.Note, error)
	UpdateFunc      func(ctx context.Context, userID, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	SoftDeleteFunc  func(ctx context.Context, userID, noteID uuid.UUID) error
	RestoreFunc     func(ctx context.Context, userID, noteID uuid.UUID) error
	HardDeleteFunc  func(ctx context.Context, userID, noteID uuid.UUID) error
}

func (m *mockNoteRepo) GetByID(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, noteID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockNoteRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []*domain.Note{}, nil
}

func (m *mockNoteRepo) ListTrashed(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error) {
	if m.ListTrashedFunc != nil {
		return m.ListTrashedFunc(ctx, userID)
	}
	return []*domain.Note{}, nil
}

func (m *mockNoteRepo) Create(ctx context.Context, userID uuid.UUID, note *domain.Note) (*domain.Note, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, note)
	}
	created := *note
	created.ID = uuid.New()
	created.UserID = userID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, userID, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, noteID, params)
	}
	return nil, domain.ErrNotFound
}

func (m *mockNoteRepo) SoftDelete(ctx context.Context, userID, noteID uuid.UUID) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, userID, noteID)
	}
	return nil
}

func (m *mockNoteRepo) Restore(ctx context.Context, userID, noteID uuid.UUID) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, userID, noteID)
	}
	return nil
}

func (m *mockNoteRepo) HardDelete(ctx context.Context, userID, noteID uuid.UUID) error {
	if m.HardDeleteFunc != nil {
		return m.HardDeleteFunc(ctx, userID, noteID)
	}
	return nil
}

type mockTagRepo struct {
	FindByNamesInsensitiveFunc func(ctx context.Context, userID uuid.UUID, names []string) ([]*domain.Tag, error)
	ListByNoteIDFunc           func(ctx context.Context, noteID uuid.UUID) ([]*domain.Tag, error)
	ListByNoteIDsFunc          func(ctx context.Context, noteIDs []uuid.UUID) ([]tagpg.TagWithNoteID, error)
	ReplaceNoteTagsFunc        func(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error
}

func (m *mockTagRepo) FindByNamesInsensitive(ctx context.Context, userID uuid.UUID, names []string) ([]*domain.Tag, error) {
	if m.FindByNamesInsensitiveFunc != nil {
		return m.FindByNamesInsensitiveFunc(ctx, userID, names)
	}
	return []*domain.Tag{}, nil
}

func (m *mockTagRepo) ListByNoteID(ctx context.Context, noteID uuid.UUID) ([]*domain.Tag, error) {
	if m.ListByNoteIDFunc != nil {
		return m.ListByNoteIDFunc(ctx, noteID)
	}
	return []*domain.Tag{}, nil
}

func (m *mockTagRepo) ListByNoteIDs(ctx context.Context, noteIDs []uuid.UUID) ([]tagpg.TagWithNoteID, error) {
	if m.ListByNoteIDsFunc != nil {
		return m.ListByNoteIDsFunc(ctx, noteIDs)
	}
	return []tagpg.TagWithNoteID{}, nil
}

func (m *mockTagRepo) ReplaceNoteTags(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error {
	if m.ReplaceNoteTagsFunc != nil {
		return m.ReplaceNoteTagsFunc(ctx, noteID, tagIDs)
	}
	return nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func newTestService(notes *mockNoteRepo, tags *mockTagRepo) *Service {
	if notes == nil {
		notes = &mockNoteRepo{}
	}
	if tags == nil {
		tags = &mockTagRepo{}
	}
	return NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		notes,
		tags,
		&mockTxManager{},
	)
}
