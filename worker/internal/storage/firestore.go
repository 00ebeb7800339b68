package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/scrubline/scrubline/common/models"
)

// FirestoreStore persists processed records to Cloud Firestore under
// tenants/{tenant_id}/processed_logs/{log_id}.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id must be provided")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

// WriteProcessed upserts the record document. Set without merge options
// replaces any existing document wholesale, which makes redelivery safe.
func (s *FirestoreStore) WriteProcessed(ctx context.Context, tenantID, logID string, rec *models.ProcessedRecord) error {
	_, err := s.client.
		Collection("tenants").Doc(tenantID).
		Collection("processed_logs").Doc(logID).
		Set(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to write processed record %s/%s: %w", tenantID, logID, err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
