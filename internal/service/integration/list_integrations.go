package integration

import (
	"context"
	"fmt"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// ListIntegrations returns all of the user's integrations regardless of
// status, ordered by provider.
func (s *Service) ListIntegrations(ctx context.Context) ([]*domain.Integration, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	integrations, err := s.integrations.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}

	return integrations, nil
}
