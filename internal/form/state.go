package form

// State is the caller-owned form being filled in. The six detail fields are
// named identically to the extraction contract keys; CreateLogin belongs to
// the submission flow and is never touched by the reconciler.
type State struct {
	FirstName         string `json:"firstName"`
	Surname           string `json:"surname"`
	Address           string `json:"address"`
	Postcode          string `json:"postcode"`
	Email             string `json:"email"`
	FavoriteTimeOfDay string `json:"favoriteTimeOfDay"`
	CreateLogin       bool   `json:"createLogin,omitempty"`
}
