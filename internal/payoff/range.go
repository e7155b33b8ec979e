package payoff

import (
	apperrors "options-payoff/internal/errors"
)

// Range percent is clamped into [MinRangePercent, MaxRangePercent] rather
// than rejected; transient invalid values are expected while a user drags
// a slider.
const (
	MinRangePercent = 1.0
	MaxRangePercent = 100.0
)

// PriceRange generates numPoints evenly spaced prices spanning
// center*(1±rangePercent/100). The result is strictly increasing with the
// first element at the lower bound and the last at the upper bound.
func PriceRange(center, rangePercent float64, numPoints int) ([]float64, error) {
	if numPoints < 2 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRange, "numPoints %d, need at least 2", numPoints)
	}
	if center <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRange, "center price %.2f, must be positive", center)
	}
	if rangePercent < MinRangePercent {
		rangePercent = MinRangePercent
	}
	if rangePercent > MaxRangePercent {
		rangePercent = MaxRangePercent
	}

	minPrice := center * (1 - rangePercent/100)
	maxPrice := center * (1 + rangePercent/100)
	step := (maxPrice - minPrice) / float64(numPoints-1)

	prices := make([]float64, numPoints)
	for i := range prices {
		prices[i] = minPrice + step*float64(i)
	}
	return prices, nil
}
