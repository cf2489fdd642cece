package model

import (
	"strings"
	"time"
)

// Lookup kinds
const (
	LookupKindSearch   = "search"
	LookupKindFeatured = "featured"
)

// LookupLog is one audited oracle lookup. Only the outcome is kept, never the
// car record itself.
type LookupLog struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Query        string    `json:"query,omitempty"`
	Success      bool      `json:"success"`
	ErrorType    string    `json:"error_type,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ResultCount  int       `json:"result_count"`
	LatencyMS    int64     `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// Error types for categorization
const (
	ErrorTypeRateLimit = "rate_limit"
	ErrorTypeNetwork   = "network"
	ErrorTypeSchema    = "schema"
	ErrorTypeParse     = "parse"
	ErrorTypeOracle    = "oracle"
	ErrorTypeUnknown   = "unknown"
)

// ClassifyError categorizes an error string into a type. Used for the audit
// log only; callers still see a single lookup failure.
func ClassifyError(errMsg string) string {
	switch {
	case contains(errMsg, "rate limit", "429", "too many requests", "resource exhausted", "quota"):
		return ErrorTypeRateLimit
	case contains(errMsg, "connection", "timeout", "deadline exceeded", "network", "dial", "no such host"):
		return ErrorTypeNetwork
	case contains(errMsg, "missing field", "invalid field", "schema"):
		return ErrorTypeSchema
	case contains(errMsg, "parse", "invalid character", "unexpected end of json", "cannot unmarshal"):
		return ErrorTypeParse
	case contains(errMsg, "oracle", "gemini", "openai", "status"):
		return ErrorTypeOracle
	default:
		return ErrorTypeUnknown
	}
}

// contains checks if s contains any of the substrings (case-insensitive)
func contains(s string, substrs ...string) bool {
	sLower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(sLower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
