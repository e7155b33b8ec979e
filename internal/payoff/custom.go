package payoff

import (
	"math"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
)

// customCurve evaluates an arbitrary list of FUT/CE/PE legs over a price
// sweep. With an explicit underlying price the standard generator is used;
// otherwise the grid is inferred from the legs' strikes and entry prices,
// since a custom strategy has no canonical center to anchor on.
func customCurve(legs []models.Leg, underlying, rangePercent float64, numPoints int) (models.PayoffCurve, error) {
	if len(legs) == 0 {
		// Degenerate but valid: a strategy being built up leg by leg.
		price := underlying
		if price <= 0 {
			price = DefaultUnderlying
		}
		return models.PayoffCurve{{Price: round2(price), PnL: 0}}, nil
	}

	if err := validateLegs(legs); err != nil {
		return nil, err
	}

	var prices []float64
	if underlying > 0 {
		var err error
		prices, err = PriceRange(underlying, rangePercent, numPoints)
		if err != nil {
			return nil, err
		}
	} else if prices = inferPriceGrid(legs); prices == nil {
		// No leg carries a usable strike or entry price; fall back to the
		// standard sweep around the default underlying.
		var err error
		prices, err = PriceRange(DefaultUnderlying, rangePercent, numPoints)
		if err != nil {
			return nil, err
		}
	}

	return sample(prices, func(price float64) float64 {
		var total float64
		for _, leg := range legs {
			total += legPayoff(leg, price)
		}
		return total
	}), nil
}

// validateLegs checks structural leg validity. The CLI parser enforces
// this already; JSON requests arrive unchecked. Economic nonsense (zero
// premium, inverted strikes) still passes, only malformed shapes fail.
func validateLegs(legs []models.Leg) error {
	for i, leg := range legs {
		switch leg.Type {
		case models.LegFutures, models.LegCall, models.LegPut:
		default:
			return apperrors.NewLegError(i, "type", "must be FUT, CE, or PE")
		}
		if leg.Action != models.ActionBuy && leg.Action != models.ActionSell {
			return apperrors.NewLegError(i, "action", "must be BUY or SELL")
		}
		if leg.LotSize < 0 {
			return apperrors.NewLegError(i, "lotSize", "must not be negative")
		}
	}
	return nil
}

// legPayoff is the at-expiration contribution of a single leg. The
// intrinsic-value formulation is uniform across CE/PE and BUY/SELL so that
// any combination of legs composes additively with consistent signs.
func legPayoff(leg models.Leg, price float64) float64 {
	switch leg.Type {
	case models.LegFutures:
		raw := (price - leg.EntryPrice) * leg.LotSize
		if leg.Action == models.ActionSell {
			return -raw
		}
		return raw
	case models.LegCall:
		intrinsic := math.Max(0, price-leg.StrikePrice)
		if leg.Action == models.ActionSell {
			return (leg.Premium - intrinsic) * leg.LotSize
		}
		return (intrinsic - leg.Premium) * leg.LotSize
	case models.LegPut:
		intrinsic := math.Max(0, leg.StrikePrice-price)
		if leg.Action == models.ActionSell {
			return (leg.Premium - intrinsic) * leg.LotSize
		}
		return (intrinsic - leg.Premium) * leg.LotSize
	}
	return 0
}

// inferPriceGrid derives an integer price grid from the legs' strikes and
// entry prices: pad min..max with a buffer, snap the bounds to 100s and
// keep the step at 50 or above. Returns nil when no leg has a usable price.
func inferPriceGrid(legs []models.Leg) []float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, leg := range legs {
		for _, v := range [2]float64{leg.StrikePrice, leg.EntryPrice} {
			if v <= 0 {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return nil
	}

	buffer := math.Max(0.5*(max-min), 3000)
	start := math.Max(1000, math.Floor((min-buffer)/100)*100)
	end := math.Ceil((max+buffer)/100) * 100
	step := math.Max(50, math.Floor((end-start)/100))

	var prices []float64
	for p := start; p <= end; p += step {
		prices = append(prices, p)
	}
	return prices
}
