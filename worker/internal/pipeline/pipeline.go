// Package pipeline runs a delivered log record through decode, redaction,
// and persistence, and classifies the result for the delivery layer.
package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/models"
	"github.com/scrubline/scrubline/worker/internal/metrics"
	"github.com/scrubline/scrubline/worker/internal/redact"
	"github.com/scrubline/scrubline/worker/internal/storage"
)

// Outcome classifies one delivery attempt.
type Outcome int

const (
	// OutcomeProcessed is a fully processed and persisted record.
	OutcomeProcessed Outcome = iota
	// OutcomePoison is a permanently malformed payload. The delivery is
	// acknowledged so the broker stops redelivering garbage.
	OutcomePoison
	// OutcomeRetry is a transient failure. The delivery is refused so the
	// broker redelivers it later.
	OutcomeRetry
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomePoison:
		return "poison"
	case OutcomeRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// Result is the terminal state of one delivery attempt. LogID carries the
// record identifier when one was decoded, for correlation in logs.
type Result struct {
	Outcome Outcome
	LogID   string
	Err     error
}

// Pipeline processes delivered records: decode, validate, redact, persist.
type Pipeline struct {
	redactor *redact.Redactor
	store    storage.Store
	logger   *logging.Logger
}

func New(redactor *redact.Redactor, store storage.Store, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		redactor: redactor,
		store:    store,
		logger:   logger,
	}
}

// Process runs one delivered payload through the pipeline. The payload is
// the base64 data field of a push delivery; it must decode to a canonical
// record. Malformed payloads are poison: they can never succeed, so they
// are classified terminal rather than retriable.
func (p *Pipeline) Process(ctx context.Context, encodedData string) Result {
	start := time.Now()

	raw, err := base64.StdEncoding.DecodeString(encodedData)
	if err != nil {
		return p.finish(ctx, Result{
			Outcome: OutcomePoison,
			Err:     fmt.Errorf("payload is not valid base64: %w", err),
		}, start)
	}

	var rec models.CanonicalRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return p.finish(ctx, Result{
			Outcome: OutcomePoison,
			Err:     fmt.Errorf("payload is not a valid record: %w", err),
		}, start)
	}

	if err := rec.Validate(); err != nil {
		return p.finish(ctx, Result{
			Outcome: OutcomePoison,
			LogID:   rec.LogID,
			Err:     fmt.Errorf("record failed validation: %w", err),
		}, start)
	}

	redacted, err := p.redactor.Redact(ctx, rec.Text)
	if err != nil {
		return p.finish(ctx, Result{
			Outcome: OutcomeRetry,
			LogID:   rec.LogID,
			Err:     fmt.Errorf("redaction interrupted: %w", err),
		}, start)
	}

	processed := models.NewProcessedRecord(&rec, redacted)
	if err := p.store.WriteProcessed(ctx, rec.TenantID, rec.LogID, processed); err != nil {
		metrics.StorageWritesTotal.WithLabelValues("error").Inc()
		return p.finish(ctx, Result{
			Outcome: OutcomeRetry,
			LogID:   rec.LogID,
			Err:     fmt.Errorf("storage write failed: %w", err),
		}, start)
	}
	metrics.StorageWritesTotal.WithLabelValues("ok").Inc()

	p.logger.InfoContext(ctx, "record processed",
		logging.TenantID(rec.TenantID),
		logging.LogID(rec.LogID),
		logging.Source(rec.Source))

	return p.finish(ctx, Result{Outcome: OutcomeProcessed, LogID: rec.LogID}, start)
}

func (p *Pipeline) finish(ctx context.Context, res Result, start time.Time) Result {
	metrics.DeliveriesTotal.WithLabelValues(res.Outcome.String()).Inc()
	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())

	if res.Err != nil {
		p.logger.WarnContext(ctx, "delivery not processed",
			logging.Outcome(res.Outcome.String()),
			logging.LogID(res.LogID),
			logging.Error(res.Err))
	}
	return res
}
