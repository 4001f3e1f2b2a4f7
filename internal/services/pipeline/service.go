package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
	"github.com/ternarybob/finsight/internal/services/extraction"
	"github.com/ternarybob/finsight/internal/services/news"
)

// Stage labels reported through the progress sink, in run order.
const (
	StageInitializing = "Initializing AI Models..."
	StageExtracting   = "Extracting Financial Data via OCR..."
	StageValidating   = "Processing & Validating Response..."
	StageAnalyzing    = "Performing Financial Ratios & Trend Analysis..."
	StageNews         = "Scanning verified news sources & Calculating Sentiment..."
	StageFinalizing   = "Finalizing Analysis..."
)

// Input is one document submitted for analysis. MIMEType may be empty,
// in which case it is detected from the bytes during encoding.
type Input struct {
	Name     string
	MIMEType string
	Reader   io.Reader
}

// Result is the pipeline's sole output: the validated, news-enriched
// analysis plus the normalised grounding citations backing it.
type Result struct {
	Analysis models.AnalysisResult    `json:"analysis"`
	Sources  []models.GroundingSource `json:"sources"`
}

// Service sequences the extraction pipeline: encode, extract, validate,
// project grounding, enrich news, finalize. Each Run owns its result
// exclusively until returned; the service itself holds no per-run state,
// so concurrent Runs are safe as long as callers don't share an Input.
type Service struct {
	extractor interfaces.Extractor
	news      interfaces.NewsProvider
	logger    arbor.ILogger
}

// NewService creates a pipeline service over the given collaborators.
func NewService(extractor interfaces.Extractor, newsProvider interfaces.NewsProvider, logger arbor.ILogger) *Service {
	return &Service{
		extractor: extractor,
		news:      newsProvider,
		logger:    logger,
	}
}

// Run executes one analysis over the input document.
//
// Progress checkpoints are emitted synchronously at the start of each
// stage, in fixed order with non-decreasing percents (10, 30, 60, 70,
// 85, 100); sink may be nil. An encoding, extraction or validation
// failure aborts the run with a stage-identifying wrap; a news
// enrichment failure never does - the run succeeds with the model's own
// news section left in place.
func (s *Service) Run(ctx context.Context, in Input, sink interfaces.ProgressSink) (*Result, error) {
	runID := uuid.NewString()
	startTime := time.Now()

	log := s.logger.WithCorrelationId(runID)
	log.Info().
		Str("document", in.Name).
		Msg("Starting analysis pipeline")

	report(sink, StageInitializing, 10)
	doc, err := extraction.EncodeDocument(in.Name, in.MIMEType, in.Reader)
	if err != nil {
		log.Error().Err(err).Msg("Document encoding failed")
		return nil, fmt.Errorf("encode document: %w", err)
	}

	report(sink, StageExtracting, 30)
	output, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		log.Error().Err(err).Msg("Extraction failed")
		return nil, fmt.Errorf("extract financial data: %w", err)
	}

	report(sink, StageValidating, 60)
	analysis, err := extraction.ParseAnalysis(output.Text)
	if err != nil {
		logValidationFailure(log, err)
		return nil, fmt.Errorf("validate model response: %w", err)
	}

	report(sink, StageAnalyzing, 70)
	sources := extraction.GroundingSources(output.Chunks)

	report(sink, StageNews, 85)
	verified := s.news.CompanyNews(ctx, analysis.TickerSymbol, analysis.CompanyName)
	merged := news.Merge(*analysis, verified)

	report(sink, StageFinalizing, 100)
	log.Info().
		Str("company", merged.CompanyName).
		Str("ticker", merged.TickerSymbol).
		Int("sources", len(sources)).
		Int("verified_news", len(verified)).
		Dur("duration", time.Since(startTime)).
		Msg("Analysis pipeline completed")

	return &Result{
		Analysis: merged,
		Sources:  sources,
	}, nil
}

// report sends a progress checkpoint to the sink when one is attached.
func report(sink interfaces.ProgressSink, stage string, percent int) {
	if sink == nil {
		return
	}
	sink.Progress(models.ProgressEvent{Stage: stage, Percent: percent})
}

// logValidationFailure logs the raw text that failed to parse or
// validate. The raw payload is the only way to debug a misbehaving
// model, so it goes to the log in full.
func logValidationFailure(log arbor.ILogger, err error) {
	switch e := err.(type) {
	case *extraction.MalformedJSONError:
		log.Error().Err(err).Str("raw", e.Raw).Msg("Model response is not valid JSON")
	case *extraction.IncompleteSchemaError:
		log.Error().Str("field", e.Field).Str("raw", e.Raw).Msg("Model response missing required fields")
	default:
		log.Error().Err(err).Msg("Model response validation failed")
	}
}
