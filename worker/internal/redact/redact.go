// Package redact scrubs sensitive tokens from log text.
package redact

import (
	"context"
	"strings"
	"time"
)

const (
	// SensitiveToken is the phone-number fragment redaction removes.
	SensitiveToken = "555-0199"
	// Marker replaces every occurrence of the sensitive token.
	Marker = "[REDACTED]"
)

// Redactor scrubs log text. The scrub cost scales with input length:
// each character adds PerCharDelay of work, so long records hold their
// delivery slot proportionally longer.
type Redactor struct {
	perCharDelay time.Duration
}

func New(perCharDelay time.Duration) *Redactor {
	return &Redactor{perCharDelay: perCharDelay}
}

// Redact returns text with every sensitive token replaced by the marker.
// It blocks for len(text) * PerCharDelay, or until ctx is done.
func (r *Redactor) Redact(ctx context.Context, text string) (string, error) {
	if delay := time.Duration(len(text)) * r.perCharDelay; delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return strings.ReplaceAll(text, SensitiveToken, Marker), nil
}
