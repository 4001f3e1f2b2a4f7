package interfaces

import (
	"context"

	"github.com/ternarybob/finsight/internal/models"
)

// NewsProvider fetches verified news for a company from a non-generative
// data provider.
//
// Enrichment is never fatal: implementations return an empty slice on any
// failure (missing credential, provider error, advisory/rate-limit note,
// network error) and log the cause instead of surfacing it.
type NewsProvider interface {
	// CompanyNews looks up recent news by ticker symbol (preferred) or
	// company-name free text. Items are newest-first with dates
	// normalised to YYYY-MM-DD. An empty slice means "no verified news
	// available" for any reason.
	CompanyNews(ctx context.Context, ticker, companyName string) []models.NewsEvent
}
