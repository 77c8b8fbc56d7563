package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// CreateReminder creates a pending reminder. RemindAt may be nil for an
// unscheduled reminder that never fires on its own.
func (s *Service) CreateReminder(ctx context.Context, input CreateReminderInput) (*domain.Reminder, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	notifyVia := domain.NotifyVia(input.NotifyVia)
	if input.NotifyVia == "" {
		notifyVia = domain.DefaultNotifyVia
	}
	recurrence := domain.Recurrence(input.Recurrence)
	if input.Recurrence == "" {
		recurrence = domain.RecurrenceNone
	}

	rem, err := s.reminders.Create(ctx, userID, &domain.Reminder{
		Message:           strings.TrimSpace(input.Message),
		RemindAt:          input.RemindAt,
		NotifyVia:         notifyVia,
		Status:            domain.ReminderStatusPending,
		Recurrence:        recurrence,
		RecurrenceEndDate: input.RecurrenceEndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}

	s.log.InfoContext(ctx, "reminder created",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", rem.ID.String()),
		slog.String("notify_via", notifyVia.String()),
	)

	return rem, nil
}
