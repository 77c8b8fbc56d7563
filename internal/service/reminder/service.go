package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

const MaxMessageLen = 500

type reminderRepo interface {
	GetByID(ctx context.Context, userID, reminderID uuid.UUID) (*domain.Reminder, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error)
	Create(ctx context.Context, userID uuid.UUID, rem *domain.Reminder) (*domain.Reminder, error)
	UpdateStatus(ctx context.Context, userID, reminderID uuid.UUID, from, to domain.ReminderStatus) error
}

// Service provides reminder management operations.
type Service struct {
	reminders reminderRepo
	log       *slog.Logger
}

// NewService creates a new Reminder service.
func NewService(
	log *slog.Logger,
	reminders reminderRepo,
) *Service {
	return &Service{
		reminders: reminders,
		log:       log.With("service", "reminder"),
	}
}

// transition moves a reminder to a new status, enforcing the lifecycle
// rules. Returns domain.ErrConflict when the current status does not
// allow the change.
func (s *Service) transition(ctx context.Context, userID, reminderID uuid.UUID, to domain.ReminderStatus) (*domain.Reminder, error) {
	rem, err := s.reminders.GetByID(ctx, userID, reminderID)
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}

	if !rem.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("reminder is %s, cannot become %s: %w", rem.Status, to, domain.ErrConflict)
	}

	if err := s.reminders.UpdateStatus(ctx, userID, reminderID, rem.Status, to); err != nil {
		return nil, fmt.Errorf("update reminder status: %w", err)
	}

	rem.Status = to
	return rem, nil
}
