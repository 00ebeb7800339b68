package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scrubline/scrubline/api/internal/handlers"
	"github.com/scrubline/scrubline/common/middleware"
)

// NewRouter constructs a ServeMux with ingestion API routes registered.
func NewRouter(h *handlers.IngestHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ingest", h.HandleIngest)

	// Health endpoints
	mux.HandleFunc("/", h.Health)
	mux.HandleFunc("/healthz", h.Health)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
