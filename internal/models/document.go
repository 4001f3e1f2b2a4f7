package models

// EncodedDocument is a financial-statement document prepared for the
// extraction request: the exact source bytes base64-encoded, with the
// declared or detected media type.
type EncodedDocument struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}
