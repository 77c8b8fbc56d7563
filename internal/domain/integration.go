package domain

import (
	"time"

	"github.com/google/uuid"
)

// Integration is a connection to an external provider (e.g. a calendar).
type Integration struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Provider           string
	ConnectedAccountID *string
	Status             IntegrationStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsActive returns true if the integration is connected and usable.
func (i *Integration) IsActive() bool {
	return i.Status == IntegrationStatusActive
}

// ProviderCalendar is the provider slug for calendar integrations.
const ProviderCalendar = "google_calendar"

// IntegrationStatus is the lifecycle state of an integration.
type IntegrationStatus string

const (
	IntegrationStatusPending IntegrationStatus = "pending"
	IntegrationStatusActive  IntegrationStatus = "active"
	IntegrationStatusRevoked IntegrationStatus = "revoked"
)

func (s IntegrationStatus) String() string { return string(s) }

func (s IntegrationStatus) IsValid() bool {
	switch s {
	case IntegrationStatusPending, IntegrationStatusActive, IntegrationStatusRevoked:
		return true
	}
	return false
}
