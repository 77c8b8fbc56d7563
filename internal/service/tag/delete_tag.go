package tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// DeleteTag removes a tag. Links to notes are removed with it; the notes
// themselves are untouched.
func (s *Service) DeleteTag(ctx context.Context, tagID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.tags.Delete(ctx, userID, tagID); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	s.log.InfoContext(ctx, "tag deleted",
		slog.String("user_id", userID.String()),
		slog.String("tag_id", tagID.String()),
	)

	return nil
}
