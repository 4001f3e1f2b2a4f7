package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
	"github.com/ternarybob/finsight/internal/services/extraction"
)

type fakeExtractor struct {
	output *interfaces.ExtractionOutput
	err    error
	gotDoc models.EncodedDocument
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, doc models.EncodedDocument) (*interfaces.ExtractionOutput, error) {
	f.calls++
	f.gotDoc = doc
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

type fakeNewsProvider struct {
	events     []models.NewsEvent
	gotTicker  string
	gotCompany string
	calls      int
}

func (f *fakeNewsProvider) CompanyNews(_ context.Context, ticker, companyName string) []models.NewsEvent {
	f.calls++
	f.gotTicker = ticker
	f.gotCompany = companyName
	return f.events
}

type recordingSink struct {
	events []models.ProgressEvent
}

func (r *recordingSink) Progress(event models.ProgressEvent) {
	r.events = append(r.events, event)
}

const annualReportResponse = "Here is the analysis:\n```json\n" + `{
  "companyName": "Infosys Limited",
  "tickerSymbol": "NSE:INFY",
  "currency": "INR",
  "mostRecentYear": 2025,
  "financialsLocal": {"revenue": 136592, "cogs": 94111, "opex": 11601, "unit": "crore"},
  "analysis": {
    "ratioAnalysis": {"summary": "Healthy margins, no leverage."},
    "trendAnalysis": {
      "summary": "Steady growth.",
      "chartData": [{"year": 2025, "revenue": 136592, "profitBeforeTax": 35441}]
    },
    "newsAnalysis": {
      "summary": "Model-guessed sentiment.",
      "events": [{"date": "2025-01-01", "title": "Guessed headline", "source": "unknown"}]
    }
  },
  "recommendations": ["Expand products segment"]
}` + "\n```"

func validExtraction() *interfaces.ExtractionOutput {
	return &interfaces.ExtractionOutput{
		Text: annualReportResponse,
		Chunks: []models.GroundingChunk{
			{Web: &models.WebSource{URI: "https://example.com/ar2025", Title: "Annual Report FY25"}},
			{Web: nil},
		},
		FinishReason: "STOP",
	}
}

func newPipeline(extractor *fakeExtractor, provider *fakeNewsProvider) *Service {
	return NewService(extractor, provider, arbor.NewLogger())
}

func TestRun(t *testing.T) {
	extractor := &fakeExtractor{output: validExtraction()}
	provider := &fakeNewsProvider{}
	sink := &recordingSink{}

	result, err := newPipeline(extractor, provider).Run(context.Background(), Input{
		Name:     "annual-report.pdf",
		MIMEType: "application/pdf",
		Reader:   strings.NewReader("%PDF-1.4 fake statement"),
	}, sink)
	require.NoError(t, err)

	assert.Equal(t, "Infosys Limited", result.Analysis.CompanyName)
	require.NotNil(t, result.Analysis.FinancialsLocal.Revenue)
	assert.Equal(t, 136592.0, *result.Analysis.FinancialsLocal.Revenue)
	assert.Equal(t, 94111.0, *result.Analysis.FinancialsLocal.COGS)
	assert.Equal(t, 11601.0, *result.Analysis.FinancialsLocal.OPEX)
	assert.Equal(t, "crore", result.Analysis.FinancialsLocal.Unit)

	// Grounding citations survive projection; the empty chunk does not
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "Annual Report FY25", result.Sources[0].Web.Title)

	// No verified news: the model's own news section stands
	require.NotNil(t, result.Analysis.Analysis.NewsAnalysis)
	assert.Equal(t, "Model-guessed sentiment.", result.Analysis.Analysis.NewsAnalysis.Summary)

	// The document reaches the extractor encoded, with its media type
	assert.Equal(t, "annual-report.pdf", extractor.gotDoc.Name)
	assert.Equal(t, "application/pdf", extractor.gotDoc.MIMEType)
	assert.NotEmpty(t, extractor.gotDoc.Data)

	// News lookup keys on what the model reported
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "NSE:INFY", provider.gotTicker)
	assert.Equal(t, "Infosys Limited", provider.gotCompany)
}

func TestRun_ProgressCheckpoints(t *testing.T) {
	sink := &recordingSink{}
	_, err := newPipeline(&fakeExtractor{output: validExtraction()}, &fakeNewsProvider{}).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, sink)
	require.NoError(t, err)

	expected := []models.ProgressEvent{
		{Stage: StageInitializing, Percent: 10},
		{Stage: StageExtracting, Percent: 30},
		{Stage: StageValidating, Percent: 60},
		{Stage: StageAnalyzing, Percent: 70},
		{Stage: StageNews, Percent: 85},
		{Stage: StageFinalizing, Percent: 100},
	}
	assert.Equal(t, expected, sink.events)
}

func TestRun_NilSink(t *testing.T) {
	_, err := newPipeline(&fakeExtractor{output: validExtraction()}, &fakeNewsProvider{}).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, nil)
	require.NoError(t, err)
}

func TestRun_VerifiedNewsReplacesModelNews(t *testing.T) {
	verified := []models.NewsEvent{
		{Date: "2025-04-17", Title: "Q4 results", Source: "Reuters", URL: "https://example.com/q4"},
		{Date: "2025-04-10", Title: "Buyback announced", Source: "Bloomberg"},
		{Date: "2025-04-02", Title: "New large deal", Source: "Mint"},
	}

	result, err := newPipeline(&fakeExtractor{output: validExtraction()}, &fakeNewsProvider{events: verified}).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, nil)
	require.NoError(t, err)

	require.NotNil(t, result.Analysis.Analysis.NewsAnalysis)
	assert.Equal(t, verified, result.Analysis.Analysis.NewsAnalysis.Events)
	assert.Equal(t,
		"Verified recent news retrieved for Infosys Limited. See articles below for details.",
		result.Analysis.Analysis.NewsAnalysis.Summary)
}

func TestRun_MalformedResponse(t *testing.T) {
	extractor := &fakeExtractor{output: &interfaces.ExtractionOutput{
		Text:         "The document seems to be a financial statement, but I could not",
		FinishReason: "STOP",
	}}
	provider := &fakeNewsProvider{}
	sink := &recordingSink{}

	result, err := newPipeline(extractor, provider).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, sink)
	require.Error(t, err)
	assert.Nil(t, result)

	var malformed *extraction.MalformedJSONError
	assert.ErrorAs(t, err, &malformed)

	// Run aborts at validation: no news lookup, no later checkpoints
	assert.Zero(t, provider.calls)
	require.NotEmpty(t, sink.events)
	assert.Equal(t, StageValidating, sink.events[len(sink.events)-1].Stage)
}

func TestRun_IncompleteResponse(t *testing.T) {
	extractor := &fakeExtractor{output: &interfaces.ExtractionOutput{
		Text:         "```json\n{\"tickerSymbol\": \"INFY\"}\n```",
		FinishReason: "STOP",
	}}

	_, err := newPipeline(extractor, &fakeNewsProvider{}).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, nil)
	require.Error(t, err)

	var incomplete *extraction.IncompleteSchemaError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "companyName", incomplete.Field)
}

func TestRun_ExtractionFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"safety blocked", extraction.ErrSafetyBlocked, extraction.ErrSafetyBlocked},
		{"empty response", extraction.ErrEmptyResponse, extraction.ErrEmptyResponse},
		{"transport failure", errors.New("extraction request failed: connection reset"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeNewsProvider{}
			_, err := newPipeline(&fakeExtractor{err: tt.err}, provider).
				Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, nil)
			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.Zero(t, provider.calls)
		})
	}
}

// The two no-text failures stay distinct through the pipeline so callers
// can tell a censored document from a silent one.
func TestRun_SafetyBlockDistinctFromEmpty(t *testing.T) {
	_, safetyErr := newPipeline(&fakeExtractor{err: extraction.ErrSafetyBlocked}, &fakeNewsProvider{}).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, nil)
	_, emptyErr := newPipeline(&fakeExtractor{err: extraction.ErrEmptyResponse}, &fakeNewsProvider{}).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: strings.NewReader("x")}, nil)

	assert.ErrorIs(t, safetyErr, extraction.ErrSafetyBlocked)
	assert.NotErrorIs(t, safetyErr, extraction.ErrEmptyResponse)
	assert.ErrorIs(t, emptyErr, extraction.ErrEmptyResponse)
	assert.NotErrorIs(t, emptyErr, extraction.ErrSafetyBlocked)
}

func TestRun_EncodingFailure(t *testing.T) {
	extractor := &fakeExtractor{output: validExtraction()}
	_, err := newPipeline(extractor, &fakeNewsProvider{}).
		Run(context.Background(), Input{Name: "doc.pdf", MIMEType: "application/pdf", Reader: failingReader{}}, nil)
	require.Error(t, err)

	var readErr *extraction.DocumentReadError
	require.ErrorAs(t, err, &readErr)
	assert.Zero(t, extractor.calls)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failure")
}
