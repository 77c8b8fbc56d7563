package middleware

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// tagging returns middleware that records enter/leave events under name.
func tagging(name string, events *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*events = append(*events, name+" in")
			next.ServeHTTP(w, r)
			*events = append(*events, name+" out")
		})
	}
}

func TestChain_FirstArgumentOutermost(t *testing.T) {
	var events []string

	h := Chain(
		tagging("a", &events),
		tagging("b", &events),
		tagging("c", &events),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		events = append(events, "handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"a in", "b in", "c in", "handler", "c out", "b out", "a out"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("unexpected ordering:\n got %v\nwant %v", events, want)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected handler status to pass through, got %d", rec.Code)
	}
}

func TestChain_NoMiddleware(t *testing.T) {
	h := Chain()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected bare handler to serve, got %d", rec.Code)
	}
}
