package models

// NewsEvent is a single news item attached to an analysis. Two provenances
// exist: model-guessed events (loosely shaped, URL may be empty) and
// provider-verified events (always carry a URL, date normalised to
// YYYY-MM-DD).
type NewsEvent struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Summary string `json:"summary"`
	URL     string `json:"url,omitempty"`
}

// NewsAnalysis is the news section of an AnalysisResult.
type NewsAnalysis struct {
	Summary string      `json:"summary"`
	Events  []NewsEvent `json:"events"`
}
