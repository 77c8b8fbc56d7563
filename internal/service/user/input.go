package user

import (
	"strings"
	"time"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// UpdateProfileInput holds parameters for partial profile updates.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	Timezone    *string
}

// Validate validates the update input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.DisplayName == nil && i.Timezone == nil {
		errs = append(errs, domain.FieldError{Field: "update", Message: "no fields to update"})
	}

	if i.DisplayName != nil && len(strings.TrimSpace(*i.DisplayName)) > MaxDisplayNameLen {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "max 100 characters"})
	}

	if i.Timezone != nil {
		tz := strings.TrimSpace(*i.Timezone)
		if tz == "" {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "cannot be empty"})
		} else if len(tz) > 64 {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "too long"})
		} else if _, err := time.LoadLocation(tz); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "invalid IANA timezone"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
