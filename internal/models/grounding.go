package models

// WebSource is a web citation (URI plus page title).
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GroundingChunk is a raw citation chunk as returned by the model. Web may
// be nil, and when present either field may still be empty - normalisation
// into GroundingSource happens downstream.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// GroundingSource is a normalised citation: Web is always present with a
// non-empty URI and title.
type GroundingSource struct {
	Web *WebSource `json:"web,omitempty"`
}
