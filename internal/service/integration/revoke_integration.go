package integration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// RevokeIntegration disconnects a provider. Its tools stop contributing to
// the agent immediately. Revoking an already revoked integration returns
// domain.ErrConflict.
func (s *Service) RevokeIntegration(ctx context.Context, integrationID uuid.UUID) (*domain.Integration, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	existing, err := s.integrations.GetByID(ctx, userID, integrationID)
	if err != nil {
		return nil, fmt.Errorf("get integration: %w", err)
	}
	if existing.Status == domain.IntegrationStatusRevoked {
		return nil, fmt.Errorf("integration already revoked: %w", domain.ErrConflict)
	}

	revoked, err := s.integrations.SetStatus(ctx, userID, integrationID, domain.IntegrationStatusRevoked)
	if err != nil {
		return nil, fmt.Errorf("revoke integration: %w", err)
	}

	s.log.InfoContext(ctx, "integration revoked",
		slog.String("user_id", userID.String()),
		slog.String("integration_id", revoked.ID.String()),
		slog.String("provider", revoked.Provider),
	)

	return revoked, nil
}
