package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/service/todo"
)

// todoService defines the minimal interface needed by TodoHandler.
type todoService interface {
	CreateTodo(ctx context.Context, input todo.CreateTodoInput) (*domain.Todo, error)
	ListTodos(ctx context.Context) ([]*domain.Todo, error)
	GetTodo(ctx context.Context, todoID uuid.UUID) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, input todo.UpdateTodoInput) (*domain.Todo, error)
	MoveTodo(ctx context.Context, input todo.MoveTodoInput) (*domain.Todo, error)
	CompleteTodo(ctx context.Context, todoID uuid.UUID) (*domain.Todo, error)
	ReopenTodo(ctx context.Context, todoID uuid.UUID) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, todoID uuid.UUID) error
}

// TodoHandler serves todo REST endpoints.
type TodoHandler struct {
	svc todoService
	log *slog.Logger
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(svc todoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: logger.With("handler", "todo")}
}

type createTodoRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority"`
	PositionX   *float64   `json:"positionX"`
	PositionY   *float64   `json:"positionY"`
	DueDate     *time.Time `json:"dueDate"`
}

type updateTodoRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Priority     string     `json:"priority"`
	PositionX    *float64   `json:"positionX"`
	PositionY    *float64   `json:"positionY"`
	DueDate      *time.Time `json:"dueDate"`
	ClearDueDate bool       `json:"clearDueDate"`
}

type moveTodoRequest struct {
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
}

type todoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	PositionX   float64    `json:"positionX"`
	PositionY   float64    `json:"positionY"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Create handles POST /v1/todos. Either a priority quadrant or explicit
// matrix coordinates may be given, not both.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	td, err := h.svc.CreateTodo(r.Context(), todo.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		PositionX:   req.PositionX,
		PositionY:   req.PositionY,
		DueDate:     req.DueDate,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(td))
}

// List handles GET /v1/todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListTodos(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]todoResponse, 0, len(todos))
	for _, td := range todos {
		resp = append(resp, toTodoResponse(td))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	td, err := h.svc.GetTodo(r.Context(), todoID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(td))
}

// Update handles PATCH /v1/todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	td, err := h.svc.UpdateTodo(r.Context(), todo.UpdateTodoInput{
		TodoID:       todoID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		PositionX:    req.PositionX,
		PositionY:    req.PositionY,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(td))
}

// Move handles POST /v1/todos/{id}/move.
func (h *TodoHandler) Move(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	var req moveTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	td, err := h.svc.MoveTodo(r.Context(), todo.MoveTodoInput{
		TodoID:    todoID,
		PositionX: req.PositionX,
		PositionY: req.PositionY,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(td))
}

// Complete handles POST /v1/todos/{id}/complete.
func (h *TodoHandler) Complete(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	td, err := h.svc.CompleteTodo(r.Context(), todoID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(td))
}

// Reopen handles POST /v1/todos/{id}/reopen.
func (h *TodoHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	td, err := h.svc.ReopenTodo(r.Context(), todoID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(td))
}

// Delete handles DELETE /v1/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteTodo(r.Context(), todoID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTodoResponse(td *domain.Todo) todoResponse {
	return todoResponse{
		ID:          td.ID.String(),
		Title:       td.Title,
		Description: td.Description,
		Status:      td.Status.String(),
		Priority:    td.Priority().String(),
		PositionX:   td.PositionX,
		PositionY:   td.PositionY,
		DueDate:     td.DueDate,
		CompletedAt: td.CompletedAt,
		CreatedAt:   td.CreatedAt,
		UpdatedAt:   td.UpdatedAt,
	}
}
