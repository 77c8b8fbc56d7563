package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

// logLine serves one request through the Logger middleware and decodes
// the single JSON log record it produced.
func logLine(t *testing.T, h http.HandlerFunc, mutate func(*http.Request)) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodPost, "/v1/notes", nil)
	if mutate != nil {
		mutate(req)
	}
	Logger(logger)(h).ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not one JSON line: %v\n%s", err, buf.String())
	}
	return line
}

func TestLogger_RecordsRequestFields(t *testing.T) {
	line := logLine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"x"}`) //nolint:errcheck
	}, nil)

	if line["msg"] != "http.request" {
		t.Errorf("msg = %v, want http.request", line["msg"])
	}
	if line["method"] != "POST" || line["path"] != "/v1/notes" {
		t.Errorf("method/path = %v %v", line["method"], line["path"])
	}
	if line["status"] != float64(http.StatusCreated) {
		t.Errorf("status = %v, want 201", line["status"])
	}
	if line["bytes"] != float64(10) {
		t.Errorf("bytes = %v, want 10", line["bytes"])
	}
	if line["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", line["level"])
	}
	if _, ok := line["duration"]; !ok {
		t.Error("expected a duration attribute")
	}
}

func TestLogger_ServerErrorLogsAtError(t *testing.T) {
	line := logLine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	if line["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", line["level"])
	}
	if line["status"] != float64(http.StatusBadGateway) {
		t.Errorf("status = %v, want 502", line["status"])
	}
}

func TestLogger_ContextIdentifiers(t *testing.T) {
	userID := uuid.New()

	line := logLine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, func(req *http.Request) {
		ctx := ctxutil.WithRequestID(req.Context(), "req-42")
		ctx = ctxutil.WithUserID(ctx, userID)
		*req = *req.WithContext(ctx)
	})

	if line["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", line["request_id"])
	}
	if line["user_id"] != userID.String() {
		t.Errorf("user_id = %v, want %s", line["user_id"], userID)
	}
}

func TestLogger_AnonymousOmitsUserID(t *testing.T) {
	line := logLine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, nil)

	if _, ok := line["user_id"]; ok {
		t.Errorf("anonymous request must not log user_id, got %v", line["user_id"])
	}
}
