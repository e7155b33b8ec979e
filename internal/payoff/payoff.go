// Package payoff implements the strategy payoff calculation engine.
//
// The engine is a set of pure functions: a price-range generator, one
// closed-form payoff formula per template strategy, a uniform multi-leg
// evaluator for custom strategies, and derived-metric helpers. Every
// calculation is independent and referentially transparent; nothing here
// performs I/O or holds state.
package payoff

import (
	"math"

	"options-payoff/internal/models"
)

// Calculation defaults, matching the interactive tool's conventions.
const (
	DefaultUnderlying   = 18000.0
	DefaultRangePercent = 30.0
	DefaultNumPoints    = 50
)

// Request describes one payoff calculation. Parameters apply to template
// strategies; CustomLegs applies to custom-strategy. UnderlyingPrice and
// RangePercent are optional overrides (zero means use defaults).
type Request struct {
	StrategyType    models.StrategyType `json:"strategyType"`
	Parameters      map[string]string   `json:"parameters,omitempty"`
	CustomLegs      []models.Leg        `json:"customLegs,omitempty"`
	UnderlyingPrice float64             `json:"underlyingPrice,omitempty"`
	RangePercent    float64             `json:"priceRangePercent,omitempty"`
	NumPoints       int                 `json:"numPoints,omitempty"`
}

// Result is a computed payoff curve with its derived metrics.
type Result struct {
	Curve   models.PayoffCurve   `json:"curve"`
	Metrics models.PayoffMetrics `json:"metrics"`
}

// payoffFunc maps an underlying price to a profit/loss value.
type payoffFunc func(price float64) float64

// Calculate computes the payoff curve and derived metrics for a request.
// All parameter and range validation happens before any curve point is
// produced; a returned error means no partial result exists.
func Calculate(req Request) (*Result, error) {
	rangePct := req.RangePercent
	if rangePct == 0 {
		rangePct = DefaultRangePercent
	}
	numPoints := req.NumPoints
	if numPoints == 0 {
		numPoints = DefaultNumPoints
	}

	var curve models.PayoffCurve
	if req.StrategyType == models.CustomStrategy {
		var err error
		curve, err = customCurve(req.CustomLegs, req.UnderlyingPrice, rangePct, numPoints)
		if err != nil {
			return nil, err
		}
	} else {
		fn, center, err := template(req.StrategyType, req.Parameters)
		if err != nil {
			return nil, err
		}
		if req.UnderlyingPrice > 0 {
			center = req.UnderlyingPrice
		}
		prices, err := PriceRange(center, rangePct, numPoints)
		if err != nil {
			return nil, err
		}
		curve = sample(prices, fn)
	}

	return &Result{Curve: curve, Metrics: Metrics(curve)}, nil
}

// sample evaluates fn over the price sweep. PnL is rounded to the nearest
// rupee, prices to two decimals, matching the monetary display granularity.
// Price rounding is skipped when the sweep step is finer than a paisa, as
// for very low-priced underlyings, so the curve stays strictly increasing.
func sample(prices []float64, fn payoffFunc) models.PayoffCurve {
	roundPrices := true
	for i := 1; i < len(prices); i++ {
		if round2(prices[i]) <= round2(prices[i-1]) {
			roundPrices = false
			break
		}
	}

	curve := make(models.PayoffCurve, 0, len(prices))
	for _, p := range prices {
		if roundPrices {
			p = round2(p)
		}
		curve = append(curve, models.PricePoint{
			Price: p,
			PnL:   math.Round(fn(p)),
		})
	}
	return curve
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
