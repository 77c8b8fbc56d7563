package note

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// DeleteNote moves a note to the trash (soft delete).
func (s *Service) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.notes.SoftDelete(ctx, userID, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.InfoContext(ctx, "note trashed",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
	)

	return nil
}

// RestoreNote brings a trashed note back.
func (s *Service) RestoreNote(ctx context.Context, noteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.notes.Restore(ctx, userID, noteID); err != nil {
		return fmt.Errorf("restore note: %w", err)
	}

	s.log.InfoContext(ctx, "note restored",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
	)

	return nil
}

// PurgeNote permanently deletes a note, trashed or not.
func (s *Service) PurgeNote(ctx context.Context, noteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.notes.HardDelete(ctx, userID, noteID); err != nil {
		return fmt.Errorf("purge note: %w", err)
	}

	s.log.InfoContext(ctx, "note purged",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
	)

	return nil
}
