//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daybookhq/daybook-backend/internal/adapter/postgres"
	integrationpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/integration"
	notepg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/note"
	reminderpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/reminder"
	tagpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/tag"
	"github.com/daybookhq/daybook-backend/internal/adapter/postgres/testhelper"
	todopg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/todo"
	userpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/user"
	"github.com/daybookhq/daybook-backend/internal/agent"
	authpkg "github.com/daybookhq/daybook-backend/internal/auth"
	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/llm"
	"github.com/daybookhq/daybook-backend/internal/markdown"
	authsvc "github.com/daybookhq/daybook-backend/internal/service/auth"
	integrationsvc "github.com/daybookhq/daybook-backend/internal/service/integration"
	notesvc "github.com/daybookhq/daybook-backend/internal/service/note"
	remindersvc "github.com/daybookhq/daybook-backend/internal/service/reminder"
	tagsvc "github.com/daybookhq/daybook-backend/internal/service/tag"
	todosvc "github.com/daybookhq/daybook-backend/internal/service/todo"
	usersvc "github.com/daybookhq/daybook-backend/internal/service/user"
	"github.com/daybookhq/daybook-backend/internal/transport/middleware"
	"github.com/daybookhq/daybook-backend/internal/transport/rest"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ---------------------------------------------------------------------------
// Scripted model: replaces the real language model with a fixed call list.
// ---------------------------------------------------------------------------

type scriptedCall struct {
	Name string
	Args map[string]any
}

// scriptedModel executes its call list against the tool executor and
// returns canned text, standing in for the language model.
type scriptedModel struct {
	calls []scriptedCall
	text  string
}

func (m *scriptedModel) Complete(ctx context.Context, _ llm.Request, exec llm.ToolExecutor) (llm.Reply, error) {
	reply := llm.Reply{Text: m.text}
	for _, c := range m.calls {
		reply.ToolResults = append(reply.ToolResults, exec.Execute(ctx, c.Name, c.Args))
	}
	return reply, nil
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). A nil model gets a
// scripted stand-in that answers without calling any tools.
func setupTestServer(t *testing.T, model *scriptedModel) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	// Repositories.
	users := userpg.New(pool)
	notes := notepg.New(pool)
	tags := tagpg.New(pool)
	reminders := reminderpg.New(pool)
	todos := todopg.New(pool)
	integrations := integrationpg.New(pool)
	tx := postgres.NewTxManager(pool)

	// MinCost keeps registration fast; production uses the config default.
	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		PasswordHashCost: bcrypt.MinCost,
	}
	jwtMgr := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	// Services.
	authService := authsvc.NewService(logger, users, jwtMgr, authCfg)
	userService := usersvc.NewService(logger, users)
	noteService := notesvc.NewService(logger, notes, tags, tx)
	tagService := tagsvc.NewService(logger, tags)
	reminderService := remindersvc.NewService(logger, reminders)
	todoService := todosvc.NewService(logger, todos)
	integrationService := integrationsvc.NewService(logger, integrations)

	if model == nil {
		model = &scriptedModel{text: "Nothing to do."}
	}
	commandAgent := agent.New(logger, notes, reminders, todos, tags, integrations, tx, model, nil, nil)

	mux := rest.NewRouter(rest.Handlers{
		Auth:        rest.NewAuthHandler(authService, logger),
		User:        rest.NewUserHandler(userService, logger),
		Note:        rest.NewNoteHandler(noteService, markdown.New(), logger),
		Reminder:    rest.NewReminderHandler(reminderService, logger),
		Todo:        rest.NewTodoHandler(todoService, logger),
		Tag:         rest.NewTagHandler(tagService, logger),
		Integration: rest.NewIntegrationHandler(integrationService, logger),
		Agent:       rest.NewAgentHandler(commandAgent, logger),
		Inbound:     rest.NewInboundHandler(commandAgent, users, config.InboundConfig{}, logger),
		Health:      rest.NewHealthHandler(pool, "test-version"),
	}, nil)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(jwtMgr),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// doRequest sends a JSON request and returns the status with the raw body.
func (ts *testServer) doRequest(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

// object decodes a JSON object body.
func object(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), "body: %s", raw)
	return m
}

// list decodes a JSON array body.
func list(t *testing.T, raw []byte) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(raw, &l), "body: %s", raw)
	return l
}

// registerUser creates an account through the API and returns its access
// token. Each caller gets a unique email.
func (ts *testServer) registerUser(t *testing.T) string {
	t.Helper()

	status, raw := ts.doRequest(t, http.MethodPost, "/v1/auth/register", "", map[string]any{
		"email":    fmt.Sprintf("test-%s@example.com", uuid.NewString()[:8]),
		"password": "test-password-1",
		"timezone": "UTC",
	})
	require.Equal(t, http.StatusCreated, status, "register: %s", raw)

	token, _ := object(t, raw)["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}
