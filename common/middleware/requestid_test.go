package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var captured string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "http://example.com/ingest", nil)
	w := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(w, req)

	if captured == "" {
		t.Fatal("expected request ID in context")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("expected valid UUID, got %q: %v", captured, err)
	}
	if got := w.Header().Get("X-Request-ID"); got != captured {
		t.Errorf("response header %q doesn't match context %q", got, captured)
	}
}

func TestRequestID_PropagatesExisting(t *testing.T) {
	var captured string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.Header.Set("X-Request-ID", "req-existing-42")
	w := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(w, req)

	if captured != "req-existing-42" {
		t.Errorf("expected propagated request ID, got %q", captured)
	}
	if got := w.Header().Get("X-Request-ID"); got != "req-existing-42" {
		t.Errorf("expected response header to carry existing ID, got %q", got)
	}
}

func TestGetRequestID_MissingContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
}
