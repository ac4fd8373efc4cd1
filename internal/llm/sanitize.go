package llm

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/formease/formease-server/constants"
)

var contractKeys = []string{
	"firstName", "surname", "address", "postcode", "email", "favoriteTimeOfDay",
}

// SanitizeDetailFields normalizes a backend response that narrowly misses the
// contract so the document can still validate:
//   - fills omitted keys with "" (absent and empty are the same outcome)
//   - replaces null with ""
//   - trims surrounding whitespace
//   - canonicalizes casing of the four time-of-day words ("morning" -> "Morning")
//   - drops unknown keys (additionalProperties is false)
//
// It never maps an out-of-enum time of day; "Dawn" survives untouched and
// fails schema validation afterwards. Returns the cleaned JSON plus the list
// of adjustments made.
func SanitizeDetailFields(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var adjusted []string

	for k := range maps.Clone(m) {
		known := false
		for _, ck := range contractKeys {
			if k == ck {
				known = true
				break
			}
		}
		if !known {
			delete(m, k)
			adjusted = append(adjusted, k+"(unknown)")
		}
	}

	for _, k := range contractKeys {
		v, ok := m[k]
		if !ok {
			m[k] = ""
			adjusted = append(adjusted, k+"(missing)")
			continue
		}
		switch t := v.(type) {
		case nil:
			m[k] = ""
			adjusted = append(adjusted, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s != t {
				adjusted = append(adjusted, k+"(trimmed)")
			}
			m[k] = s
		default:
			// non-string value; leave it for the validator to reject
		}
	}

	if v, ok := m["favoriteTimeOfDay"].(string); ok && v != "" && !constants.IsTimeOfDay(v) {
		for _, t := range constants.TimesOfDay {
			if strings.EqualFold(v, t) {
				m["favoriteTimeOfDay"] = t
				adjusted = append(adjusted, "favoriteTimeOfDay(case)")
				break
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, adjusted, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, adjusted, nil
}
