package valueobject

import "fmt"

// RiskTier is an immutable value object representing the human-readable
// risk classification returned to callers.
type RiskTier struct {
	value string
}

var (
	RiskTierLow    = RiskTier{value: "LOW"}
	RiskTierMedium = RiskTier{value: "MEDIUM"}
	RiskTierHigh   = RiskTier{value: "HIGH"}
)

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "LOW":
		return RiskTierLow, nil
	case "MEDIUM":
		return RiskTierMedium, nil
	case "HIGH":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// RiskTierFromLabel derives the tier from the classifier's class label.
// 0 is LOW and 1 is MEDIUM. Every other label, including negative or
// unexpected values, is HIGH.
func RiskTierFromLabel(label int) RiskTier {
	switch label {
	case 0:
		return RiskTierLow
	case 1:
		return RiskTierMedium
	default:
		return RiskTierHigh
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}
