package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// commandAgent defines the minimal interface needed by AgentHandler.
type commandAgent interface {
	Process(ctx context.Context, userID uuid.UUID, input, timezone string) (*domain.AgentResponse, error)
}

// AgentHandler serves the natural-language command endpoint.
type AgentHandler struct {
	agent commandAgent
	log   *slog.Logger
}

// NewAgentHandler creates an AgentHandler.
func NewAgentHandler(agent commandAgent, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{agent: agent, log: logger.With("handler", "agent")}
}

type agentMessageRequest struct {
	Text     string `json:"text"`
	Timezone string `json:"timezone"`
}

// Message handles POST /v1/agent/messages. The response carries the
// model's final text plus every tool result in invocation order, so the
// caller can render partial failures.
func (h *AgentHandler) Message(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req agentMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := ctxutil.WithChannel(r.Context(), "chat")
	resp, err := h.agent.Process(ctx, userID, req.Text, req.Timezone)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
