// Package ingress normalizes inbound submissions into canonical records.
// It is transport-independent: handlers decide where the payload and the
// tenant identifier come from.
package ingress

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/scrubline/scrubline/common/models"
)

// Validation failures. All of them map to a client error at the HTTP
// boundary; none of them result in a publish.
var (
	ErrInvalidJSON        = errors.New("invalid JSON payload")
	ErrMissingFields      = errors.New("tenant_id, log_id and text are required")
	ErrMissingTenant      = errors.New("missing tenant identifier")
	ErrEmptyBody          = errors.New("empty request body")
	ErrUnsupportedContent = errors.New("unsupported content type")
)

// NormalizeJSON parses a JSON submission into a canonical record. The
// payload must be an object with non-empty string fields tenant_id, log_id
// and text; anything else is rejected and nothing is forwarded.
func NormalizeJSON(body []byte) (*models.CanonicalRecord, error) {
	var rec models.CanonicalRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	rec.Source = models.SourceJSON
	if err := rec.Validate(); err != nil {
		return nil, ErrMissingFields
	}

	return &rec, nil
}

// NormalizeText wraps a raw text submission into a canonical record. The
// tenant arrives out-of-band (X-Tenant-ID header at the HTTP boundary) and
// the record identifier is minted fresh, so resubmitting the same text
// yields a new logical record rather than a duplicate.
func NormalizeText(tenantID string, body []byte) (*models.CanonicalRecord, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}

	return &models.CanonicalRecord{
		TenantID: tenantID,
		LogID:    uuid.NewString(),
		Text:     string(body),
		Source:   models.SourceText,
	}, nil
}
