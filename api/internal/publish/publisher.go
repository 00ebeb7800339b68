// Package publish hands canonical records to the broker.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/scrubline/scrubline/api/internal/metrics"
	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/messaging"
	"github.com/scrubline/scrubline/common/models"
)

// ErrSubjectNotConfigured is returned when the publish destination is
// missing from configuration. The caller maps it to a server error before
// anything reaches the broker.
var ErrSubjectNotConfigured = errors.New("publish subject not configured")

// Stream is the slice of the JetStream client the publisher needs.
type Stream interface {
	PublishMsgAsync(msg *nats.Msg) (jetstream.PubAckFuture, error)
}

// Publisher serializes canonical records and submits them to the broker.
// Submission is fire-and-forget: Publish returns once the broker has taken
// the message into its send buffer, and a detached goroutine observes the
// eventual acknowledgment. A failed acknowledgment is logged keyed by
// log_id but never retried and never reaches the original caller - the
// accepted/at-least-once gap the ingest contract allows.
type Publisher struct {
	stream        Stream
	subjectPrefix string
	logger        *logging.Logger
}

// New creates a Publisher. subjectPrefix is the subject the tenant token is
// appended to; an empty prefix marks the destination unconfigured.
func New(stream Stream, subjectPrefix string, logger *logging.Logger) *Publisher {
	return &Publisher{
		stream:        stream,
		subjectPrefix: subjectPrefix,
		logger:        logger,
	}
}

// Publish submits one record. The returned error covers initiation only:
// misconfiguration, serialization, or the broker refusing the message into
// its buffer. Broker acknowledgment is observed asynchronously.
func (p *Publisher) Publish(ctx context.Context, rec *models.CanonicalRecord) error {
	if p.subjectPrefix == "" {
		return ErrSubjectNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serialize record: %w", err)
	}

	msg := nats.NewMsg(p.subjectPrefix + "." + messaging.SanitizeToken(rec.TenantID))
	msg.Data = data
	msg.Header.Set(messaging.HeaderTenantID, rec.TenantID)
	msg.Header.Set(messaging.HeaderLogID, rec.LogID)

	future, err := p.stream.PublishMsgAsync(msg)
	if err != nil {
		return fmt.Errorf("initiate publish: %w", err)
	}

	metrics.PublishInitiatedTotal.Inc()
	go p.watch(future, rec.LogID)
	return nil
}

// watch logs the eventual publish outcome. There is no retry here: the
// HTTP response was already sent when this runs.
func (p *Publisher) watch(future jetstream.PubAckFuture, logID string) {
	select {
	case <-future.Ok():
		p.logger.Debug("publish acknowledged", logging.LogID(logID))
	case err := <-future.Err():
		metrics.PublishFailuresTotal.Inc()
		p.logger.Error("async publish failed", logging.LogID(logID), logging.Error(err))
	}
}
