package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator

func serveAuth(t *testing.T, validator tokenValidator, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var (
		ctxUserID uuid.UUID
		ctxHasID  bool
	)
	h := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxUserID, ctxHasID = ctxutil.UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, ctxUserID, ctxHasID
}

func TestAuth_ValidTokenLandsInContext(t *testing.T) {
	userID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateAccessTokenFunc: func(token string) (uuid.UUID, error) {
			if token != "good-token" {
				return uuid.Nil, errors.New("wrong token reached validator")
			}
			return userID, nil
		},
	}

	rec, gotID, hasID := serveAuth(t, validator, "Bearer good-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !hasID || gotID != userID {
		t.Errorf("context user id = %v (present %v), want %v", gotID, hasID, userID)
	}
}

func TestAuth_InvalidTokenIs401(t *testing.T) {
	validator := &tokenValidatorMock{
		ValidateAccessTokenFunc: func(string) (uuid.UUID, error) {
			return uuid.Nil, errors.New("token expired")
		},
	}

	reached := false
	h := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if reached {
		t.Error("handler must not run behind an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"unauthorized"}` {
		t.Errorf("unexpected body %q", body)
	}
}

func TestAuth_AnonymousWhenNoUsableToken(t *testing.T) {
	headers := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"scheme only", "Bearer"},
		{"empty credential", "Bearer "},
		{"glued scheme", "Bearertoken"},
	}

	for _, tc := range headers {
		t.Run(tc.name, func(t *testing.T) {
			validator := &tokenValidatorMock{
				ValidateAccessTokenFunc: func(string) (uuid.UUID, error) {
					return uuid.Nil, errors.New("must not be called")
				},
			}

			rec, _, hasID := serveAuth(t, validator, tc.header)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected anonymous pass-through, got %d", rec.Code)
			}
			if hasID {
				t.Error("anonymous request must not carry a user id")
			}
			if n := len(validator.ValidateAccessTokenCalls()); n != 0 {
				t.Errorf("validator called %d times for an unusable header", n)
			}
		})
	}
}

func TestBearerToken_Parsing(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"Bearer  padded", "padded"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"Bearer ", ""},
	}

	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
