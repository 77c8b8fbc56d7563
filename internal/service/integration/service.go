package integration

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// supportedProviders are the provider slugs users may connect.
var supportedProviders = []string{domain.ProviderCalendar}

type integrationRepo interface {
	GetByID(ctx context.Context, userID, integrationID uuid.UUID) (*domain.Integration, error)
	GetByProvider(ctx context.Context, userID uuid.UUID, provider string) (*domain.Integration, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Integration, error)
	Create(ctx context.Context, userID uuid.UUID, in *domain.Integration) (*domain.Integration, error)
	Activate(ctx context.Context, userID, integrationID uuid.UUID, connectedAccountID *string) (*domain.Integration, error)
	SetStatus(ctx context.Context, userID, integrationID uuid.UUID, status domain.IntegrationStatus) (*domain.Integration, error)
}

// Service provides integration lifecycle operations.
type Service struct {
	integrations integrationRepo
	log          *slog.Logger
}

// NewService creates a new Integration service.
func NewService(log *slog.Logger, integrations integrationRepo) *Service {
	return &Service{
		integrations: integrations,
		log:          log.With("service", "integration"),
	}
}
