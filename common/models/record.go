// Package models defines the wire and storage types shared by the api,
// relay, and worker services.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Source tags for canonical records, set by the ingress normalizer.
const (
	SourceJSON = "json"
	SourceText = "text"
)

// ErrIncompleteRecord is returned when a record is missing a required field.
var ErrIncompleteRecord = errors.New("record missing required fields")

// CanonicalRecord is the normalized ingest unit. It is the only payload
// that crosses the broker: the api publishes it, the worker consumes it.
type CanonicalRecord struct {
	TenantID string `json:"tenant_id"`
	LogID    string `json:"log_id"`
	Text     string `json:"text"`
	Source   string `json:"source,omitempty"`
}

// Validate reports whether the record carries everything downstream
// processing depends on. Source is a provenance marker only and is not
// checked beyond the zero value being allowed.
func (r *CanonicalRecord) Validate() error {
	if r.TenantID == "" || r.LogID == "" || r.Text == "" {
		return ErrIncompleteRecord
	}
	return nil
}

// ProcessedRecord is the document persisted for a record after redaction.
type ProcessedRecord struct {
	Source       string `json:"source" firestore:"source"`
	OriginalText string `json:"original_text" firestore:"original_text"`
	ModifiedData string `json:"modified_data" firestore:"modified_data"`
	ProcessedAt  string `json:"processed_at" firestore:"processed_at"`
	LogID        string `json:"log_id" firestore:"log_id"`
}

// NewProcessedRecord builds the persisted document for a record and its
// redacted text, stamping processed_at with the current UTC time.
func NewProcessedRecord(rec *CanonicalRecord, redacted string) *ProcessedRecord {
	return &ProcessedRecord{
		Source:       rec.Source,
		OriginalText: rec.Text,
		ModifiedData: redacted,
		ProcessedAt:  time.Now().UTC().Format(time.RFC3339),
		LogID:        rec.LogID,
	}
}

// DocumentPath returns the tenant-partitioned logical path a processed
// record is stored under. Both store backends derive their keys from it.
func DocumentPath(tenantID, logID string) string {
	return fmt.Sprintf("tenants/%s/processed_logs/%s", tenantID, logID)
}
