package enums

import "fmt"

// PriceTier buckets restaurants by typical spend.
type PriceTier string

const (
	PriceTierBudget   PriceTier = "$"
	PriceTierModerate PriceTier = "$$"
	PriceTierUpscale  PriceTier = "$$$"
	PriceTierLuxury   PriceTier = "$$$$"
)

var validPriceTiers = []PriceTier{
	PriceTierBudget,
	PriceTierModerate,
	PriceTierUpscale,
	PriceTierLuxury,
}

// String implements fmt.Stringer.
func (p PriceTier) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PriceTier) IsValid() bool {
	for _, candidate := range validPriceTiers {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceTier converts raw input into a PriceTier.
func ParsePriceTier(value string) (PriceTier, error) {
	for _, candidate := range validPriceTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price tier %q", value)
}
