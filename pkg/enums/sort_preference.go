package enums

import "fmt"

// SortPreference selects how a user wants search results ordered by default.
type SortPreference string

const (
	SortPreferenceRating     SortPreference = "rating"
	SortPreferenceDistance   SortPreference = "distance"
	SortPreferencePopularity SortPreference = "popularity"
	SortPreferencePrice      SortPreference = "price"
)

var validSortPreferences = []SortPreference{
	SortPreferenceRating,
	SortPreferenceDistance,
	SortPreferencePopularity,
	SortPreferencePrice,
}

// String implements fmt.Stringer.
func (s SortPreference) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s SortPreference) IsValid() bool {
	for _, candidate := range validSortPreferences {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortPreference converts raw input into a SortPreference.
func ParseSortPreference(value string) (SortPreference, error) {
	for _, candidate := range validSortPreferences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort preference %q", value)
}
