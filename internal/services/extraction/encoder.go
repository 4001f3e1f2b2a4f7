package extraction

import (
	"encoding/base64"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ternarybob/finsight/internal/models"
)

// EncodeDocument reads the full document payload from r and returns its
// transport encoding: the exact source bytes as base64, byte for byte,
// with no content re-encoding. When mimeType is empty the media type is
// detected from the bytes.
//
// A short or failed read returns a *DocumentReadError; nothing is
// consumed from r beyond what io.ReadAll takes.
func EncodeDocument(name, mimeType string, r io.Reader) (models.EncodedDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.EncodedDocument{}, &DocumentReadError{Name: name, Err: err}
	}

	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}

	return models.EncodedDocument{
		Name:     name,
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}
