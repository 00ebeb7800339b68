package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scrubline/scrubline/common/models"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *OpenSearchStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := NewOpenSearchStore(OpenSearchConfig{
		URL:         server.URL,
		IndexPrefix: "scrubline",
	})
	if err != nil {
		t.Fatalf("NewOpenSearchStore() error = %v", err)
	}
	return store
}

func TestOpenSearchStore_WriteProcessed(t *testing.T) {
	var gotPath string
	var gotDoc models.ProcessedRecord

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotDoc); err != nil {
			t.Errorf("Failed to decode indexed document: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"result": "created"})
	})

	rec := &models.ProcessedRecord{
		Source:       models.SourceJSON,
		OriginalText: "call 555-0199",
		ModifiedData: "call [REDACTED]",
		ProcessedAt:  "2026-01-02T03:04:05Z",
		LogID:        "log-1",
	}

	if err := store.WriteProcessed(context.Background(), "acme", "log-1", rec); err != nil {
		t.Fatalf("WriteProcessed() error = %v", err)
	}

	want := "/scrubline-tenants-acme-processed-logs/_doc/log-1"
	if gotPath != want {
		t.Errorf("Index path = %q, want %q", gotPath, want)
	}
	if gotDoc.ModifiedData != "call [REDACTED]" {
		t.Errorf("Indexed modified_data = %q", gotDoc.ModifiedData)
	}
}

func TestOpenSearchStore_IndexNameSanitized(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	got := store.indexName("Acme Corp.EU")
	want := "scrubline-tenants-acme-corp-eu-processed-logs"
	if got != want {
		t.Errorf("indexName() = %q, want %q", got, want)
	}
}

func TestOpenSearchStore_ServerError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "index blocked"}`))
	})

	rec := &models.ProcessedRecord{LogID: "log-1"}
	err := store.WriteProcessed(context.Background(), "acme", "log-1", rec)
	if err == nil {
		t.Fatal("WriteProcessed() should surface server errors")
	}
}
