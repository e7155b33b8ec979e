package payoff

import (
	"math"
	"testing"

	"options-payoff/internal/models"
)

func TestMetricsScan(t *testing.T) {
	curve := models.PayoffCurve{
		{Price: 100, PnL: -500},
		{Price: 110, PnL: -100},
		{Price: 120, PnL: 300},
		{Price: 130, PnL: 700},
		{Price: 140, PnL: 700},
	}
	m := Metrics(curve)
	if m.MaxProfit != 700 {
		t.Errorf("MaxProfit = %v, want 700", m.MaxProfit)
	}
	if m.MaxLoss != -500 {
		t.Errorf("MaxLoss = %v, want -500", m.MaxLoss)
	}
	if len(m.BreakEvens) != 1 {
		t.Fatalf("BreakEvens = %v, want one crossing", m.BreakEvens)
	}
	// -100 -> 300 crosses zero a quarter of the way through [110, 120].
	if math.Abs(m.BreakEvens[0]-112.5) > 1e-9 {
		t.Errorf("BreakEvens[0] = %v, want 112.5", m.BreakEvens[0])
	}
}

func TestMetricsEmptyCurve(t *testing.T) {
	m := Metrics(nil)
	if m.MaxProfit != 0 || m.MaxLoss != 0 || len(m.BreakEvens) != 0 {
		t.Errorf("empty curve metrics = %+v, want zeros", m)
	}
}

func TestBreakEvensTwoCrossings(t *testing.T) {
	// Straddle-like V shape crossing zero twice.
	res, err := Calculate(Request{
		StrategyType: models.LongStraddle,
		Parameters: map[string]string{
			"strikePrice": "18000",
			"callLotSize": "50",
			"putLotSize":  "50",
			"callPremium": "250",
			"putPremium":  "200",
		},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	evens := res.Metrics.BreakEvens
	if len(evens) != 2 {
		t.Fatalf("BreakEvens = %v, want two crossings", evens)
	}
	// Lower: strike - (callPremium + putPremium); upper: strike + same.
	if math.Abs(evens[0]-17550) > 1 {
		t.Errorf("lower break-even = %v, want ~17550", evens[0])
	}
	if math.Abs(evens[1]-18450) > 1 {
		t.Errorf("upper break-even = %v, want ~18450", evens[1])
	}
}

func TestCoveredCallBreakEven(t *testing.T) {
	res, err := Calculate(Request{
		StrategyType: models.CoveredCall,
		Parameters:   coveredCallFixture(),
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	evens := res.Metrics.BreakEvens
	if len(evens) != 1 {
		t.Fatalf("BreakEvens = %v, want one crossing", evens)
	}
	if math.Abs(evens[0]-17800) > 1 {
		t.Errorf("break-even = %v, want ~17800", evens[0])
	}
}

func TestBreakEvenRoundTrip(t *testing.T) {
	// The interpolated break-even, plugged back through the same payoff
	// formula, lands near zero. Accuracy is bounded by the sweep
	// resolution and integer rounding of curve points.
	p, err := parseCoveredCall(coveredCallFixture())
	if err != nil {
		t.Fatalf("parseCoveredCall: %v", err)
	}
	res, err := Calculate(Request{StrategyType: models.CoveredCall, Parameters: coveredCallFixture()})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for _, be := range res.Metrics.BreakEvens {
		if pnl := p.payoff(be); math.Abs(pnl) > 100 {
			t.Errorf("payoff at break-even %v = %v, want ~0", be, pnl)
		}
	}
}
