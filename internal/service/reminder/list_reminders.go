package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// ListReminders returns all of the user's reminders, soonest fire time
// first with unscheduled reminders last.
func (s *Service) ListReminders(ctx context.Context) ([]*domain.Reminder, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	reminders, err := s.reminders.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	return reminders, nil
}

// GetReminder returns a single reminder by ID.
func (s *Service) GetReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rem, err := s.reminders.GetByID(ctx, userID, reminderID)
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}

	return rem, nil
}
