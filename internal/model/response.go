package model

import "time"

// SearchRequest is the body of a free-text car search
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse wraps the single car found for a query
type SearchResponse struct {
	Car Car `json:"car"`
}

// FeaturedResponse lists the featured cars in oracle order
type FeaturedResponse struct {
	Cars []Car `json:"cars"`
}

// LookupStatsResponse counts failed lookups per error type
type LookupStatsResponse struct {
	Failures map[string]int `json:"failures"`
	Total    int            `json:"total"`
}

// HealthResponse reports service and dependency status
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Oracle    string    `json:"oracle"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LookupFailedMessage is shown to users when a single-car search fails
const LookupFailedMessage = "Failed to find car details. Try a different model."
