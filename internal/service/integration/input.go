package integration

import (
	"slices"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// ConnectIntegrationInput holds parameters for starting a provider connection.
type ConnectIntegrationInput struct {
	Provider string
}

// Validate validates the connect input.
func (i ConnectIntegrationInput) Validate() error {
	var errs []domain.FieldError

	if i.Provider == "" {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "required"})
	} else if !slices.Contains(supportedProviders, i.Provider) {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "unsupported provider"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ActivateIntegrationInput holds parameters for completing a connection.
type ActivateIntegrationInput struct {
	IntegrationID      uuid.UUID
	ConnectedAccountID string
}

// Validate validates the activate input.
func (i ActivateIntegrationInput) Validate() error {
	var errs []domain.FieldError

	if i.IntegrationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "integration_id", Message: "required"})
	}

	if i.ConnectedAccountID == "" {
		errs = append(errs, domain.FieldError{Field: "connected_account_id", Message: "required"})
	} else if len(i.ConnectedAccountID) > 255 {
		errs = append(errs, domain.FieldError{Field: "connected_account_id", Message: "max 255 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
