package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// MaxWeightLbs is the upper bound accepted for a single package.
// Anything above it is a data-entry error, not real freight.
const MaxWeightLbs = 10000.0

// Weight represents a weight in pounds. It is an immutable value object;
// the zero value is a valid zero weight.
type Weight struct {
	pounds float64
}

// NewWeight creates a Weight from a value in pounds.
// Negative values and values above MaxWeightLbs are rejected.
func NewWeight(pounds float64) (Weight, error) {
	if pounds < 0 || pounds > MaxWeightLbs {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", pounds, 0, MaxWeightLbs)
	}
	return Weight{pounds: pounds}, nil
}

// Pounds returns the weight value in pounds.
func (w Weight) Pounds() float64 {
	return w.pounds
}

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{pounds: w.pounds + other.pounds}
}

// IsZero reports whether the weight is exactly zero pounds.
func (w Weight) IsZero() bool {
	return w.pounds == 0
}

// String returns the weight formatted with two decimals, e.g. "12.50 lb".
func (w Weight) String() string {
	return fmt.Sprintf("%.2f lb", w.pounds)
}
