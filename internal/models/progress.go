package models

// ProgressEvent is one staged-progress checkpoint emitted during a
// pipeline run. Percent values are emitted in fixed stage order and never
// decrease or repeat within a run.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
}
