package interfaces

import (
	"context"

	"github.com/ternarybob/finsight/internal/models"
)

// ExtractionOutput is the raw result of one generative-model request:
// the response text (possibly fenced JSON), the citation chunks backing
// it, and the model's finish reason.
type ExtractionOutput struct {
	// Text is the raw response body. Empty text is reported as an error
	// by implementations, so callers can rely on it being non-empty.
	Text string

	// Chunks are the unprocessed grounding citations, in response order.
	// Nil when the model returned no grounding metadata.
	Chunks []models.GroundingChunk

	// FinishReason is the model's termination signal (e.g. "STOP",
	// "SAFETY"). May be empty.
	FinishReason string
}

// Extractor submits an encoded document to an external generative model
// with the fixed analysis task and returns the raw response.
//
// Implementations issue exactly one request per call - no retry or
// backoff. Retry policy, if any, belongs to the caller.
type Extractor interface {
	// Extract performs the model request.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - doc: Base64-encoded document with its media type
	//
	// Returns:
	//   - *ExtractionOutput: Raw text, grounding chunks, finish reason
	//   - error: ErrSafetyBlocked when the model refused on safety
	//     grounds, ErrEmptyResponse when no text came back without a
	//     safety signal, or a wrapped transport error
	Extract(ctx context.Context, doc models.EncodedDocument) (*ExtractionOutput, error)
}
