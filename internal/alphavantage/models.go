package alphavantage

// NewsItem represents a single article in a NEWS_SENTIMENT feed.
// TimePublished is the API's compact timestamp ("YYYYMMDDThhmmss").
type NewsItem struct {
	Title                 string      `json:"title"`
	URL                   string      `json:"url"`
	TimePublished         string      `json:"time_published"`
	Authors               []string    `json:"authors"`
	Summary               string      `json:"summary"`
	BannerImage           string      `json:"banner_image"`
	Source                string      `json:"source"`
	CategoryWithinSource  string      `json:"category_within_source"`
	SourceDomain          string      `json:"source_domain"`
	Topics                []NewsTopic `json:"topics"`
	OverallSentimentScore float64     `json:"overall_sentiment_score"`
	OverallSentimentLabel string      `json:"overall_sentiment_label"`
}

// NewsTopic is a topic tag with its relevance score.
type NewsTopic struct {
	Topic          string `json:"topic"`
	RelevanceScore string `json:"relevance_score"`
}

// NewsSentimentResponse is the NEWS_SENTIMENT envelope. The API reports
// failures in-band: ErrorMessage for hard errors, Note/Information for
// advisory and rate-limit conditions, all with a 200 status.
type NewsSentimentResponse struct {
	Items        string     `json:"items"`
	Feed         []NewsItem `json:"feed"`
	ErrorMessage string     `json:"Error Message"`
	Note         string     `json:"Note"`
	Information  string     `json:"Information"`
}
