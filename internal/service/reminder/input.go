package reminder

import (
	"strings"
	"time"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// CreateReminderInput holds the parameters for creating a reminder.
// An empty NotifyVia defaults to "both"; an empty Recurrence to "none".
type CreateReminderInput struct {
	Message           string
	RemindAt          *time.Time
	NotifyVia         string
	Recurrence        string
	RecurrenceEndDate *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateReminderInput) Validate() error {
	var errs []domain.FieldError

	message := strings.TrimSpace(i.Message)
	if message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(message) > MaxMessageLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: "max 500 characters"})
	}

	if i.NotifyVia != "" && !domain.NotifyVia(i.NotifyVia).IsValid() {
		errs = append(errs, domain.FieldError{Field: "notify_via", Message: "must be one of email, push, both"})
	}

	recurrence := domain.Recurrence(i.Recurrence)
	if i.Recurrence != "" && !recurrence.IsValid() {
		errs = append(errs, domain.FieldError{Field: "recurrence", Message: "must be one of none, daily, weekly, monthly"})
	}
	if recurrence.IsValid() && recurrence != domain.RecurrenceNone && i.RemindAt == nil {
		errs = append(errs, domain.FieldError{Field: "remind_at", Message: "required for recurring reminders"})
	}
	if i.RecurrenceEndDate != nil {
		if recurrence == domain.RecurrenceNone || i.Recurrence == "" {
			errs = append(errs, domain.FieldError{Field: "recurrence_end_date", Message: "requires a recurrence"})
		} else if i.RemindAt != nil && i.RecurrenceEndDate.Before(*i.RemindAt) {
			errs = append(errs, domain.FieldError{Field: "recurrence_end_date", Message: "must be after remind_at"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
