package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/service/integration"
)

// integrationService defines the minimal interface needed by IntegrationHandler.
type integrationService interface {
	ConnectIntegration(ctx context.Context, input integration.ConnectIntegrationInput) (*domain.Integration, error)
	ActivateIntegration(ctx context.Context, input integration.ActivateIntegrationInput) (*domain.Integration, error)
	RevokeIntegration(ctx context.Context, integrationID uuid.UUID) (*domain.Integration, error)
	ListIntegrations(ctx context.Context) ([]*domain.Integration, error)
}

// IntegrationHandler serves integration REST endpoints.
type IntegrationHandler struct {
	svc integrationService
	log *slog.Logger
}

// NewIntegrationHandler creates an IntegrationHandler.
func NewIntegrationHandler(svc integrationService, logger *slog.Logger) *IntegrationHandler {
	return &IntegrationHandler{svc: svc, log: logger.With("handler", "integration")}
}

type connectIntegrationRequest struct {
	Provider string `json:"provider"`
}

type activateIntegrationRequest struct {
	ConnectedAccountID string `json:"connectedAccountId"`
}

type integrationResponse struct {
	ID                 string    `json:"id"`
	Provider           string    `json:"provider"`
	ConnectedAccountID *string   `json:"connectedAccountId,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Connect handles POST /v1/integrations. The integration starts out
// pending until the external consent flow reports back.
func (h *IntegrationHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req connectIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := h.svc.ConnectIntegration(r.Context(), integration.ConnectIntegrationInput{
		Provider: req.Provider,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toIntegrationResponse(in))
}

// Activate handles POST /v1/integrations/{id}/activate.
func (h *IntegrationHandler) Activate(w http.ResponseWriter, r *http.Request) {
	integrationID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	var req activateIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := h.svc.ActivateIntegration(r.Context(), integration.ActivateIntegrationInput{
		IntegrationID:      integrationID,
		ConnectedAccountID: req.ConnectedAccountID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toIntegrationResponse(in))
}

// Revoke handles POST /v1/integrations/{id}/revoke.
func (h *IntegrationHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	integrationID, ok := pathUUID(w, r)
	if !ok {
		return
	}

	in, err := h.svc.RevokeIntegration(r.Context(), integrationID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toIntegrationResponse(in))
}

// List handles GET /v1/integrations.
func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	integrations, err := h.svc.ListIntegrations(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]integrationResponse, 0, len(integrations))
	for _, in := range integrations {
		resp = append(resp, toIntegrationResponse(in))
	}

	writeJSON(w, http.StatusOK, resp)
}

func toIntegrationResponse(in *domain.Integration) integrationResponse {
	return integrationResponse{
		ID:                 in.ID.String(),
		Provider:           in.Provider,
		ConnectedAccountID: in.ConnectedAccountID,
		Status:             in.Status.String(),
		CreatedAt:          in.CreatedAt,
		UpdatedAt:          in.UpdatedAt,
	}
}
