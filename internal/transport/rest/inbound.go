package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// inboundProcessTimeout bounds the detached agent run for one email.
const inboundProcessTimeout = 2 * time.Minute

// userResolver maps an inbound sender address to an account.
type userResolver interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// InboundHandler accepts commands arriving by email. The email delivery
// service parses the raw message and posts the sender, subject, and text
// body here; the agent run happens after the webhook is acknowledged.
type InboundHandler struct {
	agent commandAgent
	users userResolver
	cfg   config.InboundConfig
	log   *slog.Logger
}

// NewInboundHandler creates an InboundHandler.
func NewInboundHandler(agent commandAgent, users userResolver, cfg config.InboundConfig, logger *slog.Logger) *InboundHandler {
	return &InboundHandler{agent: agent, users: users, cfg: cfg, log: logger.With("handler", "inbound")}
}

type inboundEmailRequest struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Email handles POST /v1/inbound/email. Replies 202 once the sender is
// resolved; the command itself runs detached so the delivery service does
// not time out waiting on the model. Unknown senders are dropped with a
// 202 as well, so the delivery service does not retry them.
func (h *InboundHandler) Email(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req inboundEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sender := senderAddress(req.From)
	if sender == "" {
		writeError(w, http.StatusBadRequest, "from is required")
		return
	}

	command := commandText(req.Subject, req.Text)
	if command == "" {
		writeError(w, http.StatusBadRequest, "empty message")
		return
	}

	u, err := h.users.GetByEmail(r.Context(), sender)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.log.InfoContext(r.Context(), "inbound email from unknown sender", slog.String("from", sender))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	go h.process(u, command)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *InboundHandler) process(u *domain.User, command string) {
	ctx, cancel := context.WithTimeout(context.Background(), inboundProcessTimeout)
	defer cancel()
	ctx = ctxutil.WithChannel(ctx, "email")

	resp, err := h.agent.Process(ctx, u.ID, command, u.Timezone)
	if err != nil {
		h.log.ErrorContext(ctx, "inbound command failed",
			slog.String("user_id", u.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	h.log.InfoContext(ctx, "inbound command processed",
		slog.String("user_id", u.ID.String()),
		slog.Int("tool_calls", len(resp.ToolResults)),
	)
}

func (h *InboundHandler) authorized(r *http.Request) bool {
	if h.cfg.Token == "" {
		return false
	}
	got := r.Header.Get("X-Inbound-Token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.cfg.Token)) == 1
}

// senderAddress extracts the bare address from a From header value,
// accepting both "Dana <dana@example.com>" and plain address forms.
func senderAddress(from string) string {
	from = strings.TrimSpace(from)
	if from == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(from); err == nil {
		return addr.Address
	}
	return from
}

// commandText joins subject and body into the free-text command.
func commandText(subject, text string) string {
	subject = strings.TrimSpace(subject)
	text = strings.TrimSpace(text)
	switch {
	case subject == "":
		return text
	case text == "":
		return subject
	default:
		return subject + "\n\n" + text
	}
}
