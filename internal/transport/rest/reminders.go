package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/service/reminder"
)

// reminderService defines the minimal interface needed by ReminderHandler.
type reminderService interface {
	CreateReminder(ctx context.Context, input reminder.CreateReminderInput) (*domain.Reminder, error)
	ListReminders(ctx context.Context) ([]*domain.Reminder, error)
	GetReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error)
	CancelReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error)
	CompleteReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error)
	ReopenReminder(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error)
}

// ReminderHandler serves reminder REST endpoints.
type ReminderHandler struct {
	svc reminderService
	log *slog.Logger
}

// NewReminderHandler creates a ReminderHandler.
func NewReminderHandler(svc reminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, log: logger.With("handler", "reminder")}
}

type createReminderRequest struct {
	Message           string     `json:"message"`
	RemindAt          *time.Time `json:"remindAt"`
	NotifyVia         string     `json:"notifyVia"`
	Recurrence        string     `json:"recurrence"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate"`
}

type reminderResponse struct {
	ID                string     `json:"id"`
	Message           string     `json:"message"`
	RemindAt          *time.Time `json:"remindAt,omitempty"`
	NotifyVia         string     `json:"notifyVia"`
	Status            string     `json:"status"`
	Recurrence        string     `json:"recurrence"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Create handles POST /v1/reminders.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rem, err := h.svc.CreateReminder(r.Context(), reminder.CreateReminderInput{
		Message:           req.Message,
		RemindAt:          req.RemindAt,
		NotifyVia:         req.NotifyVia,
		Recurrence:        req.Recurrence,
		RecurrenceEndDate: req.RecurrenceEndDate,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReminderResponse(rem))
}

// List handles GET /v1/reminders.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.ListReminders(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]reminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		resp = append(resp, toReminderResponse(rem))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/reminders/{id}.
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	reminderID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	rem, err := h.svc.GetReminder(r.Context(), reminderID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(rem))
}

// Cancel handles POST /v1/reminders/{id}/cancel.
func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CancelReminder)
}

// Complete handles POST /v1/reminders/{id}/complete.
func (h *ReminderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CompleteReminder)
}

// Reopen handles POST /v1/reminders/{id}/reopen.
func (h *ReminderHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.ReopenReminder)
}

func (h *ReminderHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*domain.Reminder, error)) {
	reminderID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	rem, err := op(r.Context(), reminderID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(rem))
}

func toReminderResponse(rem *domain.Reminder) reminderResponse {
	return reminderResponse{
		ID:                rem.ID.String(),
		Message:           rem.Message,
		RemindAt:          rem.RemindAt,
		NotifyVia:         rem.NotifyVia.String(),
		Status:            rem.Status.String(),
		Recurrence:        rem.Recurrence.String(),
		RecurrenceEndDate: rem.RecurrenceEndDate,
		CreatedAt:         rem.CreatedAt,
		UpdatedAt:         rem.UpdatedAt,
	}
}
