package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// UpdateProfile applies a partial update to the authenticated user's
// display name and/or timezone. The timezone feeds the agent's local-time
// resolution, so it must be a valid IANA name.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var displayName, timezone *string
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		displayName = &name
	}
	if input.Timezone != nil {
		tz := strings.TrimSpace(*input.Timezone)
		timezone = &tz
	}

	updated, err := s.users.UpdateProfile(ctx, userID, displayName, timezone)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("user_id", userID.String()),
	)

	return updated, nil
}
