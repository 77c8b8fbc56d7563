package reminder

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// CancelReminder cancels a pending reminder. Cancelled is terminal.
func (s *Service) CancelReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rem, err := s.transition(ctx, userID, reminderID, domain.ReminderStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "reminder cancelled",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", reminderID.String()),
	)

	return rem, nil
}

// CompleteReminder marks a pending reminder done without it firing.
func (s *Service) CompleteReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rem, err := s.transition(ctx, userID, reminderID, domain.ReminderStatusCompleted)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "reminder completed",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", reminderID.String()),
	)

	return rem, nil
}

// ReopenReminder moves a completed reminder back to pending.
func (s *Service) ReopenReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rem, err := s.transition(ctx, userID, reminderID, domain.ReminderStatusPending)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "reminder reopened",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", reminderID.String()),
	)

	return rem, nil
}
