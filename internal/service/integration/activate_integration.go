package integration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// ActivateIntegration completes a connection once the provider reports the
// linked account. Only pending integrations can be activated; anything else
// returns domain.ErrConflict.
func (s *Service) ActivateIntegration(ctx context.Context, input ActivateIntegrationInput) (*domain.Integration, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.integrations.GetByID(ctx, userID, input.IntegrationID)
	if err != nil {
		return nil, fmt.Errorf("get integration: %w", err)
	}
	if existing.Status != domain.IntegrationStatusPending {
		return nil, fmt.Errorf("integration is %s, cannot activate: %w", existing.Status, domain.ErrConflict)
	}

	accountID := input.ConnectedAccountID
	activated, err := s.integrations.Activate(ctx, userID, input.IntegrationID, &accountID)
	if err != nil {
		return nil, fmt.Errorf("activate integration: %w", err)
	}

	s.log.InfoContext(ctx, "integration activated",
		slog.String("user_id", userID.String()),
		slog.String("integration_id", activated.ID.String()),
		slog.String("provider", activated.Provider),
	)

	return activated, nil
}
