package extraction

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
)

// Service implements interfaces.Extractor against the Gemini API. It
// issues exactly one GenerateContent request per Extract call, with the
// fixed analysis prompt, the inline document and the static profile
// configuration. No retry, no backoff.
type Service struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	timeout time.Duration
}

// NewService creates a new Gemini extraction service.
//
// The profile (model, temperature, topP, timeout) comes from the config
// value passed here and is never read from process-global state, so
// independent pipelines can run with independent profiles.
func NewService(ctx context.Context, config *common.GeminiConfig, logger arbor.ILogger) (*Service, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for the extraction service (set FINSIGHT_GEMINI_API_KEY or gemini.api_key in config)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &Service{
		config:  config,
		logger:  logger,
		client:  client,
		timeout: timeout,
	}

	logger.Info().
		Str("model", config.Model).
		Dur("timeout", timeout).
		Msg("Gemini extraction service initialized")

	return service, nil
}

// safetySettings returns the profile's content-safety thresholds. All
// four categories are deliberately unfiltered: financial statements can
// trip the filters on legitimate content (litigation notes, risk
// disclosures), and the task must see the whole document. Do not tighten
// these without revisiting the extraction prompt.
func safetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	}
}

// Extract submits the encoded document with the analysis task and returns
// the raw response text, grounding chunks and finish reason.
//
// Failure taxonomy:
//   - ErrSafetyBlocked: finish reason signalled a safety rejection
//   - ErrEmptyResponse: no text and no safety signal
//   - wrapped transport error: anything below the API surface
func (s *Service) Extract(ctx context.Context, doc models.EncodedDocument) (*interfaces.ExtractionOutput, error) {
	raw, err := base64.StdEncoding.DecodeString(doc.Data)
	if err != nil {
		return nil, &DocumentReadError{Name: doc.Name, Err: err}
	}

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				genai.NewPartFromText(AnalysisPrompt),
				genai.NewPartFromBytes(raw, doc.MIMEType),
			},
		},
	}

	config := &genai.GenerateContentConfig{
		Temperature:    genai.Ptr(s.config.Temperature),
		TopP:           genai.Ptr(s.config.TopP),
		Tools:          []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		SafetySettings: safetySettings(),
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Debug().
		Str("document", doc.Name).
		Str("mime_type", doc.MIMEType).
		Int("encoded_bytes", len(doc.Data)).
		Msg("Starting extraction request")

	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.Model, contents, config)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("document", doc.Name).
			Msg("Extraction request failed")
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	output := collectOutput(resp)

	if output.Text == "" {
		if output.FinishReason == string(genai.FinishReasonSafety) {
			s.logger.Warn().
				Str("document", doc.Name).
				Msg("Extraction blocked by safety settings")
			return nil, ErrSafetyBlocked
		}
		return nil, ErrEmptyResponse
	}

	s.logger.Info().
		Str("document", doc.Name).
		Int("response_length", len(output.Text)).
		Int("grounding_chunks", len(output.Chunks)).
		Str("finish_reason", output.FinishReason).
		Dur("duration", time.Since(startTime)).
		Msg("Extraction request completed")

	return output, nil
}

// collectOutput assembles text, grounding chunks and the finish reason
// from the first candidate carrying non-empty text.
func collectOutput(resp *genai.GenerateContentResponse) *interfaces.ExtractionOutput {
	output := &interfaces.ExtractionOutput{}
	if resp == nil || len(resp.Candidates) == 0 {
		return output
	}

	output.FinishReason = string(resp.Candidates[0].FinishReason)

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		if text.Len() > 0 {
			output.FinishReason = string(candidate.FinishReason)
			if candidate.GroundingMetadata != nil {
				for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
					converted := models.GroundingChunk{}
					if chunk.Web != nil {
						converted.Web = &models.WebSource{
							URI:   chunk.Web.URI,
							Title: chunk.Web.Title,
						}
					}
					output.Chunks = append(output.Chunks, converted)
				}
			}
			break
		}
	}

	output.Text = text.String()
	return output
}
