package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// UpdateNote applies a partial update. When Tags is non-nil the note's
// tag links are replaced with the owner's tags matching those names.
func (s *Service) UpdateNote(ctx context.Context, input UpdateNoteInput) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.NoteUpdateParams{
		Content: input.Content,
		Pinned:  input.Pinned,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		params.Title = &title
	}

	var tagIDs []uuid.UUID
	var tags []domain.Tag
	if input.Tags != nil {
		var err error
		tagIDs, tags, err = s.resolveTagIDs(ctx, userID, *input.Tags)
		if err != nil {
			return nil, fmt.Errorf("resolve tags: %w", err)
		}
	}

	var updated *domain.Note
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		note, err := s.notes.Update(txCtx, userID, input.NoteID, params)
		if err != nil {
			return fmt.Errorf("update note: %w", err)
		}

		if input.Tags != nil {
			if err := s.tags.ReplaceNoteTags(txCtx, note.ID, tagIDs); err != nil {
				return fmt.Errorf("replace tags: %w", err)
			}
		}

		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Tags != nil {
		updated.Tags = tags
	} else {
		existing, err := s.tags.ListByNoteID(ctx, updated.ID)
		if err != nil {
			return nil, fmt.Errorf("load note tags: %w", err)
		}
		updated.Tags = make([]domain.Tag, len(existing))
		for i, t := range existing {
			updated.Tags[i] = *t
		}
	}

	s.log.InfoContext(ctx, "note updated",
		slog.String("user_id", userID.String()),
		slog.String("note_id", updated.ID.String()),
	)

	return updated, nil
}

// PinNote sets or clears the pinned flag.
func (s *Service) PinNote(ctx context.Context, noteID uuid.UUID, pinned bool) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	note, err := s.notes.Update(ctx, userID, noteID, domain.NoteUpdateParams{Pinned: &pinned})
	if err != nil {
		return nil, fmt.Errorf("pin note: %w", err)
	}

	s.log.InfoContext(ctx, "note pin toggled",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
		slog.Bool("pinned", pinned),
	)

	return note, nil
}
