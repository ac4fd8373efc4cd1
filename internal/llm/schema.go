package llm

import "github.com/formease/formease-server/constants"

// BuildDetailsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the backend as a structured output constraint
// and also use it locally to validate the response.
//
// All six keys are required even when empty; the qualitative field is pinned
// to the four enum words or "". A value like "Dawn" fails validation here —
// it is never silently accepted.
func BuildDetailsJSONSchema() map[string]any {
	timeEnum := make([]any, 0, len(constants.TimesOfDay)+1)
	timeEnum = append(timeEnum, "")
	for _, t := range constants.TimesOfDay {
		timeEnum = append(timeEnum, t)
	}

	props := map[string]any{
		"firstName": map[string]any{"type": "string"},
		"surname":   map[string]any{"type": "string"},
		"address":   map[string]any{"type": "string"},
		"postcode":  map[string]any{"type": "string"},
		"email":     map[string]any{"type": "string"},
		"favoriteTimeOfDay": map[string]any{
			"type": "string",
			"enum": timeEnum,
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required": []string{
			"firstName", "surname", "address", "postcode", "email", "favoriteTimeOfDay",
		},
	}
}
