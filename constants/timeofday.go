package constants

// TimesOfDay is the closed set of values for the favourite-time-of-day field.
// Store these exact strings; the extraction contract enumerates them too.
var TimesOfDay = []string{"Morning", "Afternoon", "Evening", "Night"}

// IsTimeOfDay reports whether s is one of the four allowed values.
// The empty string is not a time of day; callers treat "" as "unknown".
func IsTimeOfDay(s string) bool {
	for _, t := range TimesOfDay {
		if s == t {
			return true
		}
	}
	return false
}
