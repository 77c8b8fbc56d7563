// Package scheduler runs the reminder dispatcher: a ticker loop that claims
// due reminders, fans them out to the notification senders, and schedules
// the next occurrence of recurring reminders.
//
// Claiming marks reminders sent before delivery is attempted, so a crashed
// dispatcher drops notifications rather than duplicating them. Delivery is
// fire-and-forget: send failures are logged and counted, never retried.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/adapter/webhook"
	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/metrics"
)

type reminderStore interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error)
	Create(ctx context.Context, userID uuid.UUID, rem *domain.Reminder) (*domain.Reminder, error)
}

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type notifier interface {
	Send(ctx context.Context, n webhook.Notification) error
}

// Dispatcher periodically claims due reminders and delivers notifications.
type Dispatcher struct {
	reminders reminderStore
	users     userStore
	email     notifier
	push      notifier
	interval  time.Duration
	batchSize int
	m         *metrics.Metrics
	log       *slog.Logger
}

// New creates a reminder dispatcher.
func New(
	log *slog.Logger,
	reminders reminderStore,
	users userStore,
	email notifier,
	push notifier,
	cfg config.SchedulerConfig,
	m *metrics.Metrics,
) *Dispatcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	return &Dispatcher{
		reminders: reminders,
		users:     users,
		email:     email,
		push:      push,
		interval:  interval,
		batchSize: batchSize,
		m:         m,
		log:       log.With("component", "scheduler"),
	}
}

// Run blocks, dispatching due reminders every interval until ctx is
// cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.InfoContext(ctx, "dispatcher started",
		slog.Duration("interval", d.interval),
		slog.Int("batch_size", d.batchSize),
	)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.InfoContext(ctx, "dispatcher stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := d.DispatchDue(ctx, time.Now()); err != nil {
				d.log.ErrorContext(ctx, "dispatch pass failed", slog.Any("error", err))
			}
		}
	}
}

// DispatchDue claims one batch of due reminders, delivers their
// notifications, and schedules follow-up occurrences. Only the claim itself
// can fail the pass; per-reminder problems are logged and skipped.
func (d *Dispatcher) DispatchDue(ctx context.Context, now time.Time) error {
	due, err := d.reminders.ClaimDue(ctx, now, d.batchSize)
	if err != nil {
		return fmt.Errorf("claim due reminders: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	for _, rem := range due {
		d.deliver(ctx, rem)
		d.scheduleNext(ctx, rem)
	}

	d.log.InfoContext(ctx, "reminders dispatched", slog.Int("count", len(due)))
	return nil
}

// deliver fans a claimed reminder out to its channels.
func (d *Dispatcher) deliver(ctx context.Context, rem *domain.Reminder) {
	var recipient string
	user, err := d.users.GetByID(ctx, rem.UserID)
	if err != nil {
		// Delivery proceeds with an empty recipient.
		d.log.ErrorContext(ctx, "resolve recipient",
			slog.String("reminder_id", rem.ID.String()),
			slog.Any("error", err),
		)
	} else {
		recipient = user.Email
	}

	n := webhook.Notification{
		UserID:    rem.UserID,
		Recipient: recipient,
		Message:   rem.Message,
		RemindAt:  rem.RemindAt,
	}

	if rem.NotifyVia.WantsEmail() {
		d.send(ctx, d.email, "email", n, rem)
	}
	if rem.NotifyVia.WantsPush() {
		d.send(ctx, d.push, "push", n, rem)
	}
}

// send delivers on one channel and records the outcome.
func (d *Dispatcher) send(ctx context.Context, via notifier, channel string, n webhook.Notification, rem *domain.Reminder) {
	if err := via.Send(ctx, n); err != nil {
		d.m.IncNotificationSend(channel, metrics.OutcomeError)
		d.log.ErrorContext(ctx, "notification send failed",
			slog.String("reminder_id", rem.ID.String()),
			slog.String("channel", channel),
			slog.Any("error", err),
		)
		return
	}

	d.m.IncNotificationSend(channel, metrics.OutcomeOK)
}

// scheduleNext creates the next occurrence of a recurring reminder as a
// fresh pending row. NextOccurrence returns nil past the recurrence end
// date, which retires the series.
func (d *Dispatcher) scheduleNext(ctx context.Context, rem *domain.Reminder) {
	next := rem.NextOccurrence()
	if next == nil {
		return
	}

	created, err := d.reminders.Create(ctx, rem.UserID, &domain.Reminder{
		Message:           rem.Message,
		RemindAt:          next,
		NotifyVia:         rem.NotifyVia,
		Status:            domain.ReminderStatusPending,
		Recurrence:        rem.Recurrence,
		RecurrenceEndDate: rem.RecurrenceEndDate,
	})
	if err != nil {
		d.log.ErrorContext(ctx, "schedule next occurrence",
			slog.String("reminder_id", rem.ID.String()),
			slog.Any("error", err),
		)
		return
	}

	d.log.DebugContext(ctx, "next occurrence scheduled",
		slog.String("reminder_id", created.ID.String()),
		slog.Time("remind_at", *next),
	)
}
