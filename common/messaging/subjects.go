package messaging

import "strings"

// Subject and stream names for the log pipeline.
// Subjects follow the pattern: {domain}.{action}.{tenant}
const (
	// StreamLogs captures every canonical record published by the api.
	StreamLogs = "LOGS"

	// SubjectLogsIngest is the subject prefix for ingested records.
	// Append a tenant token for the concrete subject.
	SubjectLogsIngest = "logs.ingest"

	// SubjectLogsIngestAll matches every tenant's ingest subject.
	SubjectLogsIngestAll = "logs.ingest.>"
)

// Durable consumer names.
const (
	// ConsumerPushDelivery is the relay's durable consumer. Its name doubles
	// as the subscription field on push envelopes it delivers.
	ConsumerPushDelivery = "push-delivery"
)

// Message header keys attached by the publisher.
const (
	HeaderTenantID = "Tenant-Id"
	HeaderLogID    = "Log-Id"
)

// LogIngestSubject returns the ingest subject for a tenant.
// Example: logs.ingest.acme
func LogIngestSubject(tenantID string) string {
	return SubjectLogsIngest + "." + SanitizeToken(tenantID)
}

// SanitizeToken makes an identifier safe for use as a subject token.
// NATS reserves '.', '*' and '>' and disallows whitespace; each run of
// reserved characters collapses to a single '-'.
func SanitizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastDash := false
	for _, r := range s {
		switch {
		case r == '.' || r == '*' || r == '>' || r == ' ' || r == '\t':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			b.WriteRune(r)
			lastDash = false
		}
	}
	out := b.String()
	if out == "" {
		return "-"
	}
	return out
}
