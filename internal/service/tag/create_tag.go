package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// CreateTag creates a new tag for the authenticated user.
// Tag names are unique per user case-insensitively; a collision returns
// domain.ErrAlreadyExists.
func (s *Service) CreateTag(ctx context.Context, input CreateTagInput) (*domain.Tag, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.tags.Create(ctx, userID, &domain.Tag{
		Name:  strings.TrimSpace(input.Name),
		Color: strings.ToLower(input.Color),
	})
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.log.InfoContext(ctx, "tag created",
		slog.String("user_id", userID.String()),
		slog.String("tag_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}
