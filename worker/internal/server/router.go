package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scrubline/scrubline/common/middleware"
	"github.com/scrubline/scrubline/worker/internal/handlers"
)

// NewRouter constructs a ServeMux with worker routes registered. Push
// deliveries land on POST /; GET / doubles as the health check.
func NewRouter(h *handlers.PushHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.HandlePush(w, r)
			return
		}
		h.Health(w, r)
	})

	// Health endpoint
	mux.HandleFunc("/healthz", h.Health)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
