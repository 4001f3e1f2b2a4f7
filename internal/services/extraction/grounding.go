package extraction

import (
	"github.com/ternarybob/finsight/internal/models"
)

// GroundingSources projects raw citation chunks into the normalised
// source list: only chunks carrying both a non-empty URI and a non-empty
// title survive, in input order, without deduplication. A nil or empty
// chunk list yields an empty list. This projection cannot fail.
func GroundingSources(chunks []models.GroundingChunk) []models.GroundingSource {
	sources := make([]models.GroundingSource, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		sources = append(sources, models.GroundingSource{
			Web: &models.WebSource{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			},
		})
	}
	return sources
}
