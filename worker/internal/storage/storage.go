// Package storage persists processed log records to a document store.
package storage

import (
	"context"

	"github.com/scrubline/scrubline/common/models"
)

// Store writes processed records keyed by tenant and log identifier.
// Writes are idempotent upserts: redelivery of the same log_id replaces
// the stored document instead of duplicating it.
type Store interface {
	WriteProcessed(ctx context.Context, tenantID, logID string, rec *models.ProcessedRecord) error
	Close() error
}
