package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/scrubline/scrubline/api/internal/ingress"
	"github.com/scrubline/scrubline/api/internal/metrics"
	"github.com/scrubline/scrubline/api/internal/ratelimit"
	"github.com/scrubline/scrubline/common/httputil"
	"github.com/scrubline/scrubline/common/logging"
	"github.com/scrubline/scrubline/common/models"
)

const HeaderTenantID = "X-Tenant-ID"

// Publisher enqueues a canonical record for asynchronous processing.
type Publisher interface {
	Publish(ctx context.Context, rec *models.CanonicalRecord) error
}

type IngestHandler struct {
	publisher    Publisher
	limiter      ratelimit.RateLimiter
	maxBodyBytes int64
	logger       *logging.Logger
}

func NewIngestHandler(publisher Publisher, limiter ratelimit.RateLimiter, maxBodyBytes int64, logger *logging.Logger) *IngestHandler {
	return &IngestHandler{
		publisher:    publisher,
		limiter:      limiter,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// HandleIngest accepts a single log record and enqueues it for processing.
// JSON submissions carry their own tenant_id and log_id; plain-text
// submissions identify the tenant via the X-Tenant-ID header and are
// assigned a fresh log_id on every call.
func (h *IngestHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		httputil.WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	defer r.Body.Close()

	kind, rec, err := h.normalize(r, body)
	if err != nil {
		metrics.IngestRequestsTotal.WithLabelValues(kind, strconv.Itoa(http.StatusBadRequest)).Inc()
		h.logger.WarnContext(r.Context(), "rejected submission",
			logging.Source(kind),
			logging.Error(err))
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	allowed, err := h.limiter.Allow(r.Context(), rec.TenantID)
	if err != nil {
		// Limiter trouble never blocks ingestion
		h.logger.WarnContext(r.Context(), "rate limiter check failed",
			logging.TenantID(rec.TenantID),
			logging.Error(err))
	} else if !allowed {
		metrics.IngestRequestsTotal.WithLabelValues(kind, strconv.Itoa(http.StatusTooManyRequests)).Inc()
		httputil.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	if err := h.publisher.Publish(r.Context(), rec); err != nil {
		metrics.IngestRequestsTotal.WithLabelValues(kind, strconv.Itoa(http.StatusInternalServerError)).Inc()
		h.logger.ErrorContext(r.Context(), "failed to enqueue record",
			logging.TenantID(rec.TenantID),
			logging.LogID(rec.LogID),
			logging.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to enqueue log record")
		return
	}

	metrics.IngestRequestsTotal.WithLabelValues(kind, strconv.Itoa(http.StatusAccepted)).Inc()
	metrics.IngestBytesTotal.Add(float64(len(body)))
	h.logger.InfoContext(r.Context(), "record accepted",
		logging.TenantID(rec.TenantID),
		logging.LogID(rec.LogID),
		logging.Source(kind))

	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"log_id": rec.LogID,
	})
}

func (h *IngestHandler) normalize(r *http.Request, body []byte) (string, *models.CanonicalRecord, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch mediaType {
	case "application/json":
		rec, err := ingress.NormalizeJSON(body)
		return models.SourceJSON, rec, err
	case "text/plain":
		rec, err := ingress.NormalizeText(r.Header.Get(HeaderTenantID), body)
		return models.SourceText, rec, err
	default:
		return "unknown", nil, ingress.ErrUnsupportedContent
	}
}

// Health reports liveness for the ingestion service.
func (h *IngestHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "api",
	})
}
