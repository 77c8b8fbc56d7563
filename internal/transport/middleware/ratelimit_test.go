package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hitFrom(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/agent/messages", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_BurstUpToLimitThen429(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	h := rl.Limit(5)(okHandler())

	for i := 0; i < 5; i++ {
		rec := hitFrom(t, h, "10.0.0.1:50000")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := hitFrom(t, h, "10.0.0.1:50000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_PortDoesNotSplitTheBucket(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	h := rl.Limit(2)(okHandler())

	assert.Equal(t, http.StatusOK, hitFrom(t, h, "10.0.0.9:1111").Code)
	assert.Equal(t, http.StatusOK, hitFrom(t, h, "10.0.0.9:2222").Code)
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(t, h, "10.0.0.9:3333").Code)
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()
	h := rl.Limit(1)(okHandler())

	assert.Equal(t, http.StatusOK, hitFrom(t, h, "10.0.0.2:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(t, h, "10.0.0.2:1000").Code)

	// A different host still has its full budget.
	assert.Equal(t, http.StatusOK, hitFrom(t, h, "10.0.0.3:1000").Code)
}

func TestRateLimiter_TokensRefillOverTime(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	// 120 per minute refills a token every half second.
	h := rl.Limit(120)(okHandler())

	for i := 0; i < 120; i++ {
		hitFrom(t, h, "10.0.0.4:9000")
	}
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(t, h, "10.0.0.4:9000").Code)

	time.Sleep(600 * time.Millisecond)

	assert.Equal(t, http.StatusOK, hitFrom(t, h, "10.0.0.4:9000").Code)
}
