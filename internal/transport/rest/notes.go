package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/service/note"
)

// noteService defines the minimal interface needed by NoteHandler.
type noteService interface {
	CreateNote(ctx context.Context, input note.CreateNoteInput) (*domain.Note, error)
	ListNotes(ctx context.Context, trashed bool) ([]*domain.Note, error)
	GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	UpdateNote(ctx context.Context, input note.UpdateNoteInput) (*domain.Note, error)
	PinNote(ctx context.Context, noteID uuid.UUID, pinned bool) (*domain.Note, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
	RestoreNote(ctx context.Context, noteID uuid.UUID) error
	PurgeNote(ctx context.Context, noteID uuid.UUID) error
}

// htmlRenderer turns markdown note content into HTML for responses.
type htmlRenderer interface {
	Render(content string) (string, error)
}

// NoteHandler serves note REST endpoints.
type NoteHandler struct {
	svc noteService
	md  htmlRenderer
	log *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(svc noteService, md htmlRenderer, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, md: md, log: logger.With("handler", "note")}
}

type createNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updateNoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Pinned  *bool     `json:"pinned"`
	Tags    *[]string `json:"tags"`
}

type pinNoteRequest struct {
	Pinned bool `json:"pinned"`
}

type noteResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	ContentHTML string        `json:"contentHtml,omitempty"`
	Pinned      bool          `json:"pinned"`
	Tags        []tagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	DeletedAt   *time.Time    `json:"deletedAt,omitempty"`
}

// Create handles POST /v1/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.svc.CreateNote(r.Context(), note.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toNoteResponse(r.Context(), n))
}

// List handles GET /v1/notes. With ?trashed=true it lists the trash
// instead of the active notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	trashed := r.URL.Query().Get("trashed") == "true"

	notes, err := h.svc.ListNotes(r.Context(), trashed)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, h.toNoteResponse(r.Context(), n))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	n, err := h.svc.GetNote(r.Context(), noteID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toNoteResponse(r.Context(), n))
}

// Update handles PATCH /v1/notes/{id}. Absent fields are left unchanged.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.svc.UpdateNote(r.Context(), note.UpdateNoteInput{
		NoteID:  noteID,
		Title:   req.Title,
		Content: req.Content,
		Pinned:  req.Pinned,
		Tags:    req.Tags,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toNoteResponse(r.Context(), n))
}

// Pin handles POST /v1/notes/{id}/pin.
func (h *NoteHandler) Pin(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	var req pinNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.svc.PinNote(r.Context(), noteID, req.Pinned)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toNoteResponse(r.Context(), n))
}

// Delete handles DELETE /v1/notes/{id}. The note moves to trash.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteNote(r.Context(), noteID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Restore handles POST /v1/notes/{id}/restore.
func (h *NoteHandler) Restore(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.RestoreNote(r.Context(), noteID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Purge handles DELETE /v1/notes/{id}/purge. The note is removed for good.
func (h *NoteHandler) Purge(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.PurgeNote(r.Context(), noteID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) toNoteResponse(ctx context.Context, n *domain.Note) noteResponse {
	html, err := h.md.Render(n.Content)
	if err != nil {
		h.log.WarnContext(ctx, "render note content", slog.String("error", err.Error()))
		html = ""
	}

	tags := make([]tagResponse, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, toTagResponse(&t))
	}

	return noteResponse{
		ID:          n.ID.String(),
		Title:       n.Title,
		Content:     n.Content,
		ContentHTML: html,
		Pinned:      n.Pinned,
		Tags:        tags,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
		DeletedAt:   n.DeletedAt,
	}
}
