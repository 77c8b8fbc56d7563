package note

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// ListNotes returns the user's active notes, pinned first, with tags
// attached. With trashed=true it returns soft-deleted notes instead.
func (s *Service) ListNotes(ctx context.Context, trashed bool) ([]*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var (
		notes []*domain.Note
		err   error
	)
	if trashed {
		notes, err = s.notes.ListTrashed(ctx, userID)
	} else {
		notes, err = s.notes.List(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	if err := s.hydrateTags(ctx, notes); err != nil {
		return nil, fmt.Errorf("load note tags: %w", err)
	}

	return notes, nil
}

// GetNote returns a single note by ID with tags attached.
func (s *Service) GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	note, err := s.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	tags, err := s.tags.ListByNoteID(ctx, note.ID)
	if err != nil {
		return nil, fmt.Errorf("load note tags: %w", err)
	}
	note.Tags = make([]domain.Tag, len(tags))
	for i, t := range tags {
		note.Tags[i] = *t
	}

	return note, nil
}
