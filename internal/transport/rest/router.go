package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daybookhq/daybook-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Note        *NoteHandler
	Reminder    *ReminderHandler
	Todo        *TodoHandler
	Tag         *TagHandler
	Integration *IntegrationHandler
	Agent       *AgentHandler
	Inbound     *InboundHandler
	Health      *HealthHandler
}

// NewRouter mounts all REST routes on a ServeMux. agentLimit, when not
// nil, wraps only the agent endpoint; everything else shares the global
// middleware chain applied by the caller.
func NewRouter(h Handlers, agentLimit middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /v1/auth/login", h.Auth.Login)

	mux.HandleFunc("GET /v1/me", h.User.Me)
	mux.HandleFunc("PATCH /v1/me", h.User.UpdateProfile)

	mux.HandleFunc("POST /v1/notes", h.Note.Create)
	mux.HandleFunc("GET /v1/notes", h.Note.List)
	mux.HandleFunc("GET /v1/notes/{id}", h.Note.Get)
	mux.HandleFunc("PATCH /v1/notes/{id}", h.Note.Update)
	mux.HandleFunc("DELETE /v1/notes/{id}", h.Note.Delete)
	mux.HandleFunc("POST /v1/notes/{id}/pin", h.Note.Pin)
	mux.HandleFunc("POST /v1/notes/{id}/restore", h.Note.Restore)
	mux.HandleFunc("DELETE /v1/notes/{id}/purge", h.Note.Purge)

	mux.HandleFunc("POST /v1/reminders", h.Reminder.Create)
	mux.HandleFunc("GET /v1/reminders", h.Reminder.List)
	mux.HandleFunc("GET /v1/reminders/{id}", h.Reminder.Get)
	mux.HandleFunc("POST /v1/reminders/{id}/cancel", h.Reminder.Cancel)
	mux.HandleFunc("POST /v1/reminders/{id}/complete", h.Reminder.Complete)
	mux.HandleFunc("POST /v1/reminders/{id}/reopen", h.Reminder.Reopen)

	mux.HandleFunc("POST /v1/todos", h.Todo.Create)
	mux.HandleFunc("GET /v1/todos", h.Todo.List)
	mux.HandleFunc("GET /v1/todos/{id}", h.Todo.Get)
	mux.HandleFunc("PATCH /v1/todos/{id}", h.Todo.Update)
	mux.HandleFunc("DELETE /v1/todos/{id}", h.Todo.Delete)
	mux.HandleFunc("POST /v1/todos/{id}/complete", h.Todo.Complete)
	mux.HandleFunc("POST /v1/todos/{id}/reopen", h.Todo.Reopen)
	mux.HandleFunc("POST /v1/todos/{id}/move", h.Todo.Move)

	mux.HandleFunc("POST /v1/tags", h.Tag.Create)
	mux.HandleFunc("GET /v1/tags", h.Tag.List)
	mux.HandleFunc("PATCH /v1/tags/{id}", h.Tag.Update)
	mux.HandleFunc("DELETE /v1/tags/{id}", h.Tag.Delete)

	mux.HandleFunc("POST /v1/integrations", h.Integration.Connect)
	mux.HandleFunc("GET /v1/integrations", h.Integration.List)
	mux.HandleFunc("POST /v1/integrations/{id}/activate", h.Integration.Activate)
	mux.HandleFunc("POST /v1/integrations/{id}/revoke", h.Integration.Revoke)

	var agentHandler http.Handler = http.HandlerFunc(h.Agent.Message)
	if agentLimit != nil {
		agentHandler = agentLimit(agentHandler)
	}
	mux.Handle("POST /v1/agent/messages", agentHandler)

	mux.HandleFunc("POST /v1/inbound/email", h.Inbound.Email)

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
