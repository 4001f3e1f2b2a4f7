package news

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finsight/internal/alphavantage"
	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/models"
)

// Service implements interfaces.NewsProvider on top of the Alpha Vantage
// NEWS_SENTIMENT function. Enrichment is strictly best-effort: every
// failure mode collapses to an empty list with a warning in the log, so
// a broken or unconfigured news provider never costs an analysis run.
type Service struct {
	client *alphavantage.Client
	limit  int
	logger arbor.ILogger
}

// NewService creates a news enrichment service. When no API key is
// configured the service still constructs and every lookup no-ops; the
// missing credential is a configuration warning, not an error.
func NewService(config *common.AlphaVantageConfig, logger arbor.ILogger) *Service {
	s := &Service{
		limit:  config.Limit,
		logger: logger,
	}
	if s.limit <= 0 {
		s.limit = 5
	}

	if config.APIKey == "" {
		logger.Warn().Msg("Alpha Vantage API key is missing; verified news enrichment disabled")
		return s
	}

	opts := []alphavantage.ClientOption{
		alphavantage.WithLogger(logger),
	}
	if config.BaseURL != "" {
		opts = append(opts, alphavantage.WithBaseURL(config.BaseURL))
	}
	if config.RateLimit > 0 {
		opts = append(opts, alphavantage.WithRateLimit(config.RateLimit))
	}
	if config.Timeout != "" {
		if timeout, err := time.ParseDuration(config.Timeout); err == nil && timeout > 0 {
			opts = append(opts, alphavantage.WithTimeout(timeout))
		} else {
			logger.Warn().
				Str("timeout", config.Timeout).
				Msg("Invalid Alpha Vantage timeout; using client default")
		}
	}
	s.client = alphavantage.NewClient(config.APIKey, opts...)

	return s
}

// CompanyNews fetches up to the configured number of recent verified news
// items, newest first. The lookup keys on the bare ticker code when one
// is known (exchange prefixes reported by the model are stripped), else
// on the company name as free text. Any provider failure returns an
// empty list.
func (s *Service) CompanyNews(ctx context.Context, ticker, companyName string) []models.NewsEvent {
	if s.client == nil {
		return nil
	}

	// Guard on the normalised code, not the raw string: a whitespace-only
	// ticker must not produce a query with neither tickers nor keywords.
	code := common.ParseTicker(ticker).Code
	if code == "" && companyName == "" {
		return nil
	}

	var tickers []string
	if code != "" {
		tickers = []string{code}
	}

	resp, err := s.client.GetNewsSentiment(ctx, tickers, companyName,
		alphavantage.WithLimit(s.limit),
		alphavantage.WithSort("LATEST"),
	)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("ticker", ticker).
			Str("company", companyName).
			Msg("Verified news lookup failed; continuing without enrichment")
		return nil
	}

	events := make([]models.NewsEvent, 0, len(resp.Feed))
	for _, item := range resp.Feed {
		if len(events) >= s.limit {
			break
		}
		source := item.Source
		if source == "" {
			source = item.SourceDomain
		}
		events = append(events, models.NewsEvent{
			Date:    FormatCompactDate(item.TimePublished),
			Title:   item.Title,
			Source:  source,
			Summary: item.Summary,
			URL:     item.URL,
		})
	}

	s.logger.Info().
		Str("ticker", ticker).
		Str("company", companyName).
		Int("events", len(events)).
		Msg("Verified news retrieved")

	return events
}

// FormatCompactDate reformats the provider's compact timestamp
// ("20240115T123000") to ISO "2024-01-15" by direct substring
// extraction. It assumes the exact 8-digit date prefix; shorter input is
// returned unchanged.
func FormatCompactDate(ts string) string {
	if len(ts) < 8 {
		return ts
	}
	return ts[0:4] + "-" + ts[4:6] + "-" + ts[6:8]
}
