package llm

import "context"

// DetailFields is the normalized shape we want from the LLM. Every key is
// always present in backend output; "" means the document gave no signal for
// that field. There is deliberately no null/absent state.
type DetailFields struct {
	FirstName         string `json:"firstName"`
	Surname           string `json:"surname"`
	Address           string `json:"address"` // street and city lines, never the postcode
	Postcode          string `json:"postcode"`
	Email             string `json:"email"`
	FavoriteTimeOfDay string `json:"favoriteTimeOfDay"` // Morning|Afternoon|Evening|Night or ""
}

// IsEmpty reports whether the extraction produced nothing at all.
func (f DetailFields) IsEmpty() bool {
	return f == DetailFields{}
}

// ExtractRequest carries one encoded document to the backend.
type ExtractRequest struct {
	// FileDataURI is the document in data:<mediaType>;base64,<data> form.
	FileDataURI string
}

// DetailExtractor is the interface the extraction pipeline depends on.
type DetailExtractor interface {
	ExtractDetails(ctx context.Context, req ExtractRequest) (DetailFields, []byte /*rawJSON*/, error)
}
