package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// CreateNote creates a new note and links any existing tags whose names
// match the input, case-insensitively. Unknown tag names are skipped.
func (s *Service) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	tagIDs, tags, err := s.resolveTagIDs(ctx, userID, input.Tags)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	var created *domain.Note
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		note, err := s.notes.Create(txCtx, userID, &domain.Note{
			Title:   strings.TrimSpace(input.Title),
			Content: input.Content,
		})
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}

		if len(tagIDs) > 0 {
			if err := s.tags.ReplaceNoteTags(txCtx, note.ID, tagIDs); err != nil {
				return fmt.Errorf("link tags: %w", err)
			}
		}

		created = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	created.Tags = tags

	s.log.InfoContext(ctx, "note created",
		slog.String("user_id", userID.String()),
		slog.String("note_id", created.ID.String()),
		slog.Int("tags", len(tags)),
	)

	return created, nil
}
