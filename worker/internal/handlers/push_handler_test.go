package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/models"
	"github.com/scrubline/scrubline/worker/internal/pipeline"
	"github.com/scrubline/scrubline/worker/internal/redact"
)

// Mock store for testing
type mockStore struct {
	writes   map[string]*models.ProcessedRecord
	writeErr error
}

func newMockStore() *mockStore {
	return &mockStore{writes: make(map[string]*models.ProcessedRecord)}
}

func (m *mockStore) WriteProcessed(ctx context.Context, tenantID, logID string, rec *models.ProcessedRecord) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes[models.DocumentPath(tenantID, logID)] = rec
	return nil
}

func (m *mockStore) Close() error { return nil }

func newTestHandler(store *mockStore) *PushHandler {
	logger := logging.New(slog.LevelError, "text")
	p := pipeline.New(redact.New(0), store, logger)
	return NewPushHandler(p, logger)
}

func pushBody(t *testing.T, rec *models.CanonicalRecord) []byte {
	t.Helper()
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	envelope := models.PushEnvelope{
		Message: &models.PushMessage{
			Data:      base64.StdEncoding.EncodeToString(data),
			MessageID: "1",
		},
		Subscription: "push-delivery",
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

func TestHandlePush_Success(t *testing.T) {
	store := newMockStore()
	handler := newTestHandler(store)

	body := pushBody(t, &models.CanonicalRecord{
		TenantID: "acme",
		LogID:    "log-1",
		Text:     "ping 555-0199",
		Source:   models.SourceJSON,
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.HandlePush(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["status"] != "success" {
		t.Errorf("Expected status 'success', got %q", response["status"])
	}

	stored, ok := store.writes["tenants/acme/processed_logs/log-1"]
	if !ok {
		t.Fatal("record not stored")
	}
	if stored.ModifiedData != "ping [REDACTED]" {
		t.Errorf("ModifiedData = %q, want %q", stored.ModifiedData, "ping [REDACTED]")
	}
}

func TestHandlePush_MissingMessage(t *testing.T) {
	store := newMockStore()
	handler := newTestHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"subscription": "push-delivery"}`))
	rr := httptest.NewRecorder()
	handler.HandlePush(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlePush_MalformedBody(t *testing.T) {
	store := newMockStore()
	handler := newTestHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	rr := httptest.NewRecorder()
	handler.HandlePush(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlePush_PoisonPayloadAcked(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid base64", "!!!not-base64!!!"},
		{"not a record", base64.StdEncoding.EncodeToString([]byte("garbage"))},
		{"empty data", ""},
		{"missing fields", base64.StdEncoding.EncodeToString([]byte(`{"tenant_id": "acme"}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			handler := newTestHandler(store)

			body, _ := json.Marshal(models.PushEnvelope{
				Message: &models.PushMessage{Data: tt.data},
			})

			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.HandlePush(rr, req)

			// Poison is acked with 200 so the broker stops redelivering
			if rr.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", rr.Code)
			}
			if len(store.writes) != 0 {
				t.Error("Poison payload must not reach storage")
			}
		})
	}
}

func TestHandlePush_StorageFailureNacked(t *testing.T) {
	store := newMockStore()
	store.writeErr = errors.New("backend unavailable")
	handler := newTestHandler(store)

	body := pushBody(t, &models.CanonicalRecord{
		TenantID: "acme",
		LogID:    "log-1",
		Text:     "hello",
		Source:   models.SourceJSON,
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.HandlePush(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
}

func TestHandlePush_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(newMockStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.HandlePush(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(newMockStore())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["status"] != "ok" || response["service"] != "worker" {
		t.Errorf("Unexpected health body: %v", response)
	}
}
