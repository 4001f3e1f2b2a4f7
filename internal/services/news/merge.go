package news

import (
	"fmt"

	"github.com/ternarybob/finsight/internal/models"
)

// Merge applies the verified-news overwrite rule and returns a new
// result; the input is never mutated.
//
// When verified is non-empty it replaces the news section wholesale: the
// model's own guessed events are discarded, the summary becomes a fixed
// sentence naming the company, and a missing news section is created
// fresh. When verified is empty the result passes through untouched,
// including an absent news section.
func Merge(result models.AnalysisResult, verified []models.NewsEvent) models.AnalysisResult {
	if len(verified) == 0 {
		return result
	}

	result.Analysis.NewsAnalysis = &models.NewsAnalysis{
		Events:  verified,
		Summary: fmt.Sprintf("Verified recent news retrieved for %s. See articles below for details.", result.CompanyName),
	}

	return result
}
