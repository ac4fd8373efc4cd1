package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURIRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		data      []byte
	}{
		{"plain text", "text/plain", []byte("My name is John Doe.")},
		{"pdf-ish bytes", "application/pdf", []byte("%PDF-1.4\x00\x01\x02binary\xff")},
		{"empty body", "text/plain", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri := EncodeDataURI(tt.mediaType, tt.data)

			mt, data, err := ParseDataURI(uri)
			require.NoError(t, err)
			assert.Equal(t, tt.mediaType, mt)
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestParseDataURIRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"no scheme", "text/plain;base64,aGVsbG8="},
		{"no payload separator", "data:text/plain;base64"},
		{"not base64 tagged", "data:text/plain,hello"},
		{"bad base64", "data:text/plain;base64,!!!not-base64!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseDataURI(tt.uri)
			assert.Error(t, err)
		})
	}
}
