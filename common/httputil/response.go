// Package httputil provides shared HTTP response helpers for the api and
// worker services.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code and data.
// Encoding errors are logged; at that point the status line is already on
// the wire and nothing more can be sent to the client.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteStatus writes the conventional {"status": ...} body used by the
// health and ack responses.
func WriteStatus(w http.ResponseWriter, status int, value string) {
	WriteJSON(w, status, map[string]string{"status": value})
}
