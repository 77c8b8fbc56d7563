package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// UpdateTag applies a partial update to a tag.
func (s *Service) UpdateTag(ctx context.Context, input UpdateTagInput) (*domain.Tag, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var params domain.TagUpdateParams
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		params.Name = &name
	}
	if input.Color != nil {
		color := strings.ToLower(*input.Color)
		params.Color = &color
	}

	updated, err := s.tags.Update(ctx, userID, input.TagID, params)
	if err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}

	s.log.InfoContext(ctx, "tag updated",
		slog.String("user_id", userID.String()),
		slog.String("tag_id", updated.ID.String()),
	)

	return updated, nil
}
