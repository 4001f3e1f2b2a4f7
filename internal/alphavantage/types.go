// Package alphavantage provides a client for the Alpha Vantage API.
// This package centralizes all Alpha Vantage API interactions for the
// application; currently only the NEWS_SENTIMENT function is used.
package alphavantage

import (
	"fmt"
)

// QueryOption represents an optional parameter for API queries.
type QueryOption func(*queryParams)

// queryParams holds optional query parameters.
type queryParams struct {
	Limit int
	Sort  string // LATEST, EARLIEST, RELEVANCE
}

// WithLimit sets the maximum number of results.
func WithLimit(limit int) QueryOption {
	return func(p *queryParams) {
		p.Limit = limit
	}
}

// WithSort sets the result ordering (LATEST, EARLIEST, RELEVANCE).
func WithSort(sort string) QueryOption {
	return func(p *queryParams) {
		p.Sort = sort
	}
}

// APIError represents an explicit error message from the Alpha Vantage
// API ("Error Message" field, or a non-200 status).
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// AdvisoryError represents an advisory/rate-limit note from the API
// ("Note" or "Information" fields). The free tier reports quota
// exhaustion this way with a 200 status.
type AdvisoryError struct {
	Note string
}

func (e *AdvisoryError) Error() string {
	return fmt.Sprintf("Alpha Vantage advisory: %s", e.Note)
}
