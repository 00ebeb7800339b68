package logging

import "log/slog"

// Common field names for consistent logging across services.
const (
	FieldService  = "service"
	FieldTenantID = "tenant_id"
	FieldLogID    = "log_id"
	FieldSource   = "source"
	FieldOutcome  = "outcome"
	FieldSubject  = "subject"
	FieldBackend  = "backend"
	FieldMethod   = "method"
	FieldPath     = "path"
	FieldStatus   = "status"
	FieldDuration = "duration_ms"
	FieldError    = "error"
)

// CorrelationUnknown is logged as the log_id when a message fails before
// its record identifier could be decoded.
const CorrelationUnknown = "unknown"

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// TenantID returns a slog attribute for the tenant identifier.
func TenantID(id string) slog.Attr {
	return slog.String(FieldTenantID, id)
}

// LogID returns a slog attribute for the record identifier. Pass
// CorrelationUnknown when the identifier has not been decoded yet.
func LogID(id string) slog.Attr {
	if id == "" {
		id = CorrelationUnknown
	}
	return slog.String(FieldLogID, id)
}

// Source returns a slog attribute for the record's provenance tag.
func Source(source string) slog.Attr {
	return slog.String(FieldSource, source)
}

// Outcome returns a slog attribute for a pipeline outcome.
func Outcome(outcome string) slog.Attr {
	return slog.String(FieldOutcome, outcome)
}

// Subject returns a slog attribute for a broker subject.
func Subject(subject string) slog.Attr {
	return slog.String(FieldSubject, subject)
}

// Backend returns a slog attribute for a storage backend name.
func Backend(name string) slog.Attr {
	return slog.String(FieldBackend, name)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
