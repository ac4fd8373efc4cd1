package form

import "github.com/formease/formease-server/internal/llm"

// MergeExtracted writes each non-empty extracted value into the state,
// overwriting whatever was there, and leaves fields the extraction came back
// empty for untouched. An empty value never erases user input.
//
// Returns the number of fields actually written (0..6); the caller shows it
// as "N fields pre-filled". An all-empty record produces zero writes and the
// caller should surface "nothing found" rather than a silent no-op.
func MergeExtracted(fields llm.DetailFields, state *State) int {
	filled := 0
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
			filled++
		}
	}
	set(&state.FirstName, fields.FirstName)
	set(&state.Surname, fields.Surname)
	set(&state.Address, fields.Address)
	set(&state.Postcode, fields.Postcode)
	set(&state.Email, fields.Email)
	set(&state.FavoriteTimeOfDay, fields.FavoriteTimeOfDay)
	return filled
}
