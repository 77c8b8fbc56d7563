package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// ConnectIntegration starts a provider connection for the authenticated user.
// A fresh connection is created with status pending; a previously revoked one
// is reset to pending. A connection that is already pending or active returns
// domain.ErrAlreadyExists.
func (s *Service) ConnectIntegration(ctx context.Context, input ConnectIntegrationInput) (*domain.Integration, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.integrations.GetByProvider(ctx, userID, input.Provider)
	switch {
	case err == nil:
		if existing.Status != domain.IntegrationStatusRevoked {
			return nil, fmt.Errorf("integration for %s is %s: %w", input.Provider, existing.Status, domain.ErrAlreadyExists)
		}

		reset, resetErr := s.integrations.SetStatus(ctx, userID, existing.ID, domain.IntegrationStatusPending)
		if resetErr != nil {
			return nil, fmt.Errorf("reset integration: %w", resetErr)
		}

		s.log.InfoContext(ctx, "integration reconnected",
			slog.String("user_id", userID.String()),
			slog.String("integration_id", reset.ID.String()),
			slog.String("provider", reset.Provider),
		)

		return reset, nil
	case errors.Is(err, domain.ErrNotFound):
		// no prior connection, create one
	default:
		return nil, fmt.Errorf("get integration by provider: %w", err)
	}

	created, err := s.integrations.Create(ctx, userID, &domain.Integration{
		Provider: input.Provider,
		Status:   domain.IntegrationStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create integration: %w", err)
	}

	s.log.InfoContext(ctx, "integration connected",
		slog.String("user_id", userID.String()),
		slog.String("integration_id", created.ID.String()),
		slog.String("provider", created.Provider),
	)

	return created, nil
}
