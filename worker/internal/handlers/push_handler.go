package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/scrubline/scrubline/common/httputil"
	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/models"
	"github.com/scrubline/scrubline/worker/internal/pipeline"
)

// PushHandler receives push deliveries from the broker bridge.
type PushHandler struct {
	pipeline *pipeline.Pipeline
	logger   *logging.Logger
}

func NewPushHandler(p *pipeline.Pipeline, logger *logging.Logger) *PushHandler {
	return &PushHandler{pipeline: p, logger: logger}
}

// HandlePush handles POST / push deliveries. The response status is the
// delivery verdict: any 2xx acknowledges the message, anything else asks
// the broker to redeliver. Payloads that can never succeed are
// acknowledged with 200 so they stop cycling; only the envelope missing
// its message object draws a 400.
func (h *PushHandler) HandlePush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var envelope models.PushEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.logger.ErrorContext(r.Context(), "invalid push delivery body",
			logging.LogID(""),
			logging.Error(err))
		httputil.WriteError(w, http.StatusBadRequest, "invalid push message format")
		return
	}

	if envelope.Message == nil {
		h.logger.ErrorContext(r.Context(), "push delivery missing message object",
			logging.LogID(""))
		httputil.WriteError(w, http.StatusBadRequest, "invalid push message format")
		return
	}

	res := h.pipeline.Process(r.Context(), envelope.Message.Data)
	switch res.Outcome {
	case pipeline.OutcomeProcessed:
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
	case pipeline.OutcomePoison:
		// Ack to stop redelivery of bad data
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "dropped"})
	default:
		httputil.WriteError(w, http.StatusInternalServerError, "processing failed")
	}
}

// Health reports liveness for the worker service.
func (h *PushHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "worker",
	})
}
