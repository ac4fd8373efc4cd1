package ingest

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURI packs a media type and raw bytes into the single-string form
// data:<mediaType>;base64,<encoded>. This is the only shape the extraction
// backend accepts, regardless of the document's original transport.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI reverses EncodeDataURI. Decoding must reproduce the original
// bytes exactly; anything that is not a base64 data URI is an error.
func ParseDataURI(uri string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI missing payload")
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data URI is not base64-encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return mediaType, data, nil
}
