package domain

import (
	"testing"
	"time"
)

func TestReminder_IsDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		remindAt *time.Time
		status   ReminderStatus
		want     bool
	}{
		{"pending in the past", &past, ReminderStatusPending, true},
		{"pending exactly now", &now, ReminderStatusPending, true},
		{"pending in the future", &future, ReminderStatusPending, false},
		{"pending without fire time", nil, ReminderStatusPending, false},
		{"cancelled in the past", &past, ReminderStatusCancelled, false},
		{"sent in the past", &past, ReminderStatusSent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &Reminder{RemindAt: tt.remindAt, Status: tt.status}
			if got := r.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReminder_NextOccurrence(t *testing.T) {
	t.Parallel()

	fireAt := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		r := &Reminder{RemindAt: &fireAt, Recurrence: RecurrenceNone}
		if got := r.NextOccurrence(); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("daily", func(t *testing.T) {
		t.Parallel()
		r := &Reminder{RemindAt: &fireAt, Recurrence: RecurrenceDaily}
		got := r.NextOccurrence()
		want := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
		if got == nil || !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("weekly", func(t *testing.T) {
		t.Parallel()
		r := &Reminder{RemindAt: &fireAt, Recurrence: RecurrenceWeekly}
		got := r.NextOccurrence()
		want := time.Date(2025, 2, 7, 9, 0, 0, 0, time.UTC)
		if got == nil || !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("monthly rolls over short month", func(t *testing.T) {
		t.Parallel()
		r := &Reminder{RemindAt: &fireAt, Recurrence: RecurrenceMonthly}
		got := r.NextOccurrence()
		// AddDate normalizes Jan 31 + 1 month to Mar 3 (2025 is not a leap year).
		want := fireAt.AddDate(0, 1, 0)
		if got == nil || !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("stops past end date", func(t *testing.T) {
		t.Parallel()
		end := fireAt.Add(12 * time.Hour)
		r := &Reminder{RemindAt: &fireAt, Recurrence: RecurrenceDaily, RecurrenceEndDate: &end}
		if got := r.NextOccurrence(); got != nil {
			t.Errorf("expected nil past end date, got %v", got)
		}
	})

	t.Run("end date inclusive", func(t *testing.T) {
		t.Parallel()
		end := fireAt.AddDate(0, 0, 1)
		r := &Reminder{RemindAt: &fireAt, Recurrence: RecurrenceDaily, RecurrenceEndDate: &end}
		got := r.NextOccurrence()
		if got == nil || !got.Equal(end) {
			t.Errorf("occurrence landing on the end date should survive: got %v", got)
		}
	})

	t.Run("no fire time", func(t *testing.T) {
		t.Parallel()
		r := &Reminder{Recurrence: RecurrenceDaily}
		if got := r.NextOccurrence(); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

func TestReminderStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from ReminderStatus
		to   ReminderStatus
		want bool
	}{
		{ReminderStatusPending, ReminderStatusSent, true},
		{ReminderStatusPending, ReminderStatusCancelled, true},
		{ReminderStatusPending, ReminderStatusCompleted, true},
		{ReminderStatusCompleted, ReminderStatusPending, true},
		{ReminderStatusSent, ReminderStatusPending, false},
		{ReminderStatusSent, ReminderStatusCancelled, false},
		{ReminderStatusCancelled, ReminderStatusPending, false},
		{ReminderStatusCancelled, ReminderStatusSent, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNotifyVia_Channels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		via       NotifyVia
		wantEmail bool
		wantPush  bool
	}{
		{NotifyViaEmail, true, false},
		{NotifyViaPush, false, true},
		{NotifyViaBoth, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.via), func(t *testing.T) {
			t.Parallel()
			if got := tt.via.WantsEmail(); got != tt.wantEmail {
				t.Errorf("WantsEmail() = %v, want %v", got, tt.wantEmail)
			}
			if got := tt.via.WantsPush(); got != tt.wantPush {
				t.Errorf("WantsPush() = %v, want %v", got, tt.wantPush)
			}
		})
	}
}

func TestNotifyVia_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		via  NotifyVia
		want bool
	}{
		{NotifyViaEmail, true},
		{NotifyViaPush, true},
		{NotifyViaBoth, true},
		{NotifyVia("sms"), false},
		{NotifyVia(""), false},
	}
	for _, tt := range tests {
		if got := tt.via.IsValid(); got != tt.want {
			t.Errorf("NotifyVia(%q).IsValid() = %v, want %v", tt.via, got, tt.want)
		}
	}
}

func TestRecurrence_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rec  Recurrence
		want bool
	}{
		{RecurrenceNone, true},
		{RecurrenceDaily, true},
		{RecurrenceWeekly, true},
		{RecurrenceMonthly, true},
		{Recurrence("yearly"), false},
		{Recurrence(""), false},
	}
	for _, tt := range tests {
		if got := tt.rec.IsValid(); got != tt.want {
			t.Errorf("Recurrence(%q).IsValid() = %v, want %v", tt.rec, got, tt.want)
		}
	}
}
