package constants

import "strings"

// Media types accepted for autofill uploads.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeText = "text/plain"
)

// MaxUploadBytes is the ceiling for a single uploaded document (5 MiB).
const MaxUploadBytes = 5 * 1024 * 1024

// AllowedMediaTypes holds the upload allow-list for the extraction flow.
var AllowedMediaTypes = map[string]struct{}{
	MediaTypePDF:  {},
	MediaTypeText: {},
}

// AllowedExtensions maps accepted file extensions to their media types.
var AllowedExtensions = map[string]string{
	"pdf": MediaTypePDF,
	"txt": MediaTypeText,
}

// IsAllowedMediaType reports whether mt is on the upload allow-list.
func IsAllowedMediaType(mt string) bool {
	_, ok := AllowedMediaTypes[strings.ToLower(strings.TrimSpace(mt))]
	return ok
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MediaTypeForExt returns the media type for a file extension, or "" when the
// extension is not accepted.
func MediaTypeForExt(ext string) string {
	return AllowedExtensions[NormalizeExt(ext)]
}
