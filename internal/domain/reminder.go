package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a scheduled notification with optional recurrence.
type Reminder struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Message           string
	RemindAt          *time.Time
	NotifyVia         NotifyVia
	Status            ReminderStatus
	Recurrence        Recurrence
	RecurrenceEndDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsPending returns true if the reminder has not fired, been cancelled, or completed.
func (r *Reminder) IsPending() bool {
	return r.Status == ReminderStatusPending
}

// IsDue returns true if the reminder is pending and its fire time has passed.
// Reminders without a fire time are never due.
func (r *Reminder) IsDue(now time.Time) bool {
	return r.IsPending() && r.RemindAt != nil && !r.RemindAt.After(now)
}

// NextOccurrence returns the fire time of the next occurrence after the
// current one, or nil when the reminder does not recur or the next
// occurrence would fall past RecurrenceEndDate.
func (r *Reminder) NextOccurrence() *time.Time {
	if r.Recurrence == RecurrenceNone || r.RemindAt == nil {
		return nil
	}

	var next time.Time
	switch r.Recurrence {
	case RecurrenceDaily:
		next = r.RemindAt.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		next = r.RemindAt.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		next = r.RemindAt.AddDate(0, 1, 0)
	default:
		return nil
	}

	if r.RecurrenceEndDate != nil && next.After(*r.RecurrenceEndDate) {
		return nil
	}

	return &next
}

// NotifyVia is the delivery channel for a reminder notification.
type NotifyVia string

const (
	NotifyViaEmail NotifyVia = "email"
	NotifyViaPush  NotifyVia = "push"
	NotifyViaBoth  NotifyVia = "both"
)

// DefaultNotifyVia is applied when no channel is specified.
const DefaultNotifyVia = NotifyViaBoth

func (v NotifyVia) String() string { return string(v) }

func (v NotifyVia) IsValid() bool {
	switch v {
	case NotifyViaEmail, NotifyViaPush, NotifyViaBoth:
		return true
	}
	return false
}

// WantsEmail returns true if the channel includes email delivery.
func (v NotifyVia) WantsEmail() bool { return v == NotifyViaEmail || v == NotifyViaBoth }

// WantsPush returns true if the channel includes push delivery.
func (v NotifyVia) WantsPush() bool { return v == NotifyViaPush || v == NotifyViaBoth }

// ReminderStatus is the lifecycle state of a reminder.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusSent      ReminderStatus = "sent"
	ReminderStatusCancelled ReminderStatus = "cancelled"
	ReminderStatusCompleted ReminderStatus = "completed"
)

func (s ReminderStatus) String() string { return string(s) }

func (s ReminderStatus) IsValid() bool {
	switch s {
	case ReminderStatusPending, ReminderStatusSent, ReminderStatusCancelled, ReminderStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change is allowed.
// Pending reminders can fire, be cancelled, or be completed; completed
// reminders can be reopened. Sent and cancelled are terminal.
func (s ReminderStatus) CanTransitionTo(to ReminderStatus) bool {
	switch s {
	case ReminderStatusPending:
		return to == ReminderStatusSent || to == ReminderStatusCancelled || to == ReminderStatusCompleted
	case ReminderStatusCompleted:
		return to == ReminderStatusPending
	}
	return false
}

// Recurrence is the repeat schedule of a reminder.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) String() string { return string(r) }

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}
