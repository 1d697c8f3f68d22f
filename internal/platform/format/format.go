// Package format holds the body encodings the API negotiates between.
package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/danielgtaylor/huma/v2"
	humacbor "github.com/danielgtaylor/huma/v2/formats/cbor"
)

const (
	// ContentTypeJSON is the default response media type.
	ContentTypeJSON = "application/json"
	// ContentTypeCBOR is selected with an Accept: application/cbor request header.
	ContentTypeCBOR = "application/cbor"
	// ContentTypeProblemJSON is used for RFC 9457 problem documents.
	ContentTypeProblemJSON = "application/problem+json"
)

// JSON writes compact JSON without HTML escaping and without the trailing newline
// that json.Encoder appends, so bodies are byte-for-byte predictable.
var JSON = huma.Format{
	Marshal:   MarshalJSON,
	Unmarshal: json.Unmarshal,
}

// MarshalJSON encodes v as compact JSON to w.
func MarshalJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// Formats returns a fresh format table keyed by media type and suffix, as huma
// expects in Config.Formats.
func Formats() map[string]huma.Format {
	return map[string]huma.Format{
		ContentTypeJSON: JSON,
		"json":          JSON,
		ContentTypeCBOR: humacbor.DefaultCBORFormat,
		"cbor":          humacbor.DefaultCBORFormat,
	}
}
