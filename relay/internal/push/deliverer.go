// Package push delivers queued log records to the worker over HTTP.
package push

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/messaging"
	"github.com/scrubline/scrubline/common/models"
)

// Deliverer wraps each consumed message in a push envelope and POSTs it
// to the worker. The worker's HTTP status is the delivery verdict: any
// 2xx acknowledges the message, anything else nacks it for redelivery.
type Deliverer struct {
	client       *http.Client
	workerURL    string
	subscription string
	logger       *logging.Logger
}

func New(workerURL string, timeout time.Duration, logger *logging.Logger) *Deliverer {
	return &Deliverer{
		client:       &http.Client{Timeout: timeout},
		workerURL:    workerURL,
		subscription: messaging.ConsumerPushDelivery,
		logger:       logger,
	}
}

// Handle is the consume callback. A returned error leaves the message on
// the stream for redelivery.
func (d *Deliverer) Handle(ctx context.Context, msg *messaging.Message) error {
	envelope := models.PushEnvelope{
		Message: &models.PushMessage{
			Data:        base64.StdEncoding.EncodeToString(msg.Data),
			MessageID:   msg.ID,
			PublishTime: msg.Timestamp.UTC().Format(time.RFC3339),
		},
		Subscription: d.subscription,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal push envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.workerURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivery to worker failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	logID := msg.Metadata[messaging.HeaderLogID]
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.logger.WarnContext(ctx, "worker refused delivery",
			logging.LogID(logID),
			logging.Status(resp.StatusCode))
		return fmt.Errorf("worker returned status %d", resp.StatusCode)
	}

	d.logger.DebugContext(ctx, "delivery acknowledged",
		logging.LogID(logID),
		logging.Status(resp.StatusCode))
	return nil
}
