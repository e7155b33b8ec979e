package payoff

import (
	"math"
	"testing"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
)

func TestLegPayoffLongCall(t *testing.T) {
	leg := models.Leg{
		Type:        models.LegCall,
		Action:      models.ActionBuy,
		StrikePrice: 18000,
		Premium:     200,
		LotSize:     50,
	}
	// intrinsic 1000, pnl (1000-200)*50
	if got := legPayoff(leg, 19000); got != 40000 {
		t.Errorf("legPayoff = %v, want 40000", got)
	}
	// Out of the money: lose the premium.
	if got := legPayoff(leg, 17000); got != -10000 {
		t.Errorf("legPayoff OTM = %v, want -10000", got)
	}
}

func TestLegPayoffSigns(t *testing.T) {
	tests := []struct {
		name  string
		leg   models.Leg
		price float64
		want  float64
	}{
		{"short call ITM", models.Leg{Type: models.LegCall, Action: models.ActionSell, StrikePrice: 18000, Premium: 200, LotSize: 50}, 19000, -40000},
		{"short call OTM", models.Leg{Type: models.LegCall, Action: models.ActionSell, StrikePrice: 18000, Premium: 200, LotSize: 50}, 17000, 10000},
		{"long put ITM", models.Leg{Type: models.LegPut, Action: models.ActionBuy, StrikePrice: 18000, Premium: 150, LotSize: 50}, 17000, 42500},
		{"short put OTM", models.Leg{Type: models.LegPut, Action: models.ActionSell, StrikePrice: 18000, Premium: 150, LotSize: 50}, 19000, 7500},
		{"long futures", models.Leg{Type: models.LegFutures, Action: models.ActionBuy, EntryPrice: 18200, LotSize: 50}, 18500, 15000},
		{"short futures", models.Leg{Type: models.LegFutures, Action: models.ActionSell, EntryPrice: 18200, LotSize: 50}, 18500, -15000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := legPayoff(tt.leg, tt.price); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("legPayoff = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomEmptyLegs(t *testing.T) {
	res, err := Calculate(Request{StrategyType: models.CustomStrategy})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(res.Curve) != 1 {
		t.Fatalf("curve = %v, want single degenerate point", res.Curve)
	}
	if res.Curve[0].Price != DefaultUnderlying || res.Curve[0].PnL != 0 {
		t.Errorf("degenerate point = %+v, want (%v, 0)", res.Curve[0], DefaultUnderlying)
	}
}

func TestCustomInferredGrid(t *testing.T) {
	legs := []models.Leg{
		{Type: models.LegCall, Action: models.ActionBuy, StrikePrice: 18000, Premium: 200, LotSize: 50},
		{Type: models.LegPut, Action: models.ActionBuy, StrikePrice: 17500, Premium: 150, LotSize: 50},
	}
	prices := inferPriceGrid(legs)
	if prices == nil {
		t.Fatal("inferPriceGrid returned nil")
	}

	// min=17500, max=18000, buffer=max(250, 3000)=3000.
	if prices[0] != 14500 {
		t.Errorf("start = %v, want 14500", prices[0])
	}
	last := prices[len(prices)-1]
	if last > 21000 || last <= 21000-65 {
		t.Errorf("end = %v, want at or just below 21000", last)
	}
	step := prices[1] - prices[0]
	if step != 65 { // floor((21000-14500)/100) = 65
		t.Errorf("step = %v, want 65", step)
	}
	for i := 1; i < len(prices); i++ {
		if prices[i]-prices[i-1] != step {
			t.Fatalf("uneven step at %d", i)
		}
		if prices[i] != math.Trunc(prices[i]) {
			t.Fatalf("non-integer grid price %v", prices[i])
		}
	}
}

func TestCustomInferredGridMinimumStep(t *testing.T) {
	// Tight strikes: the span is dominated by the 3000 buffer floor and
	// the step clamps at 50.
	legs := []models.Leg{
		{Type: models.LegCall, Action: models.ActionBuy, StrikePrice: 2500, Premium: 30, LotSize: 50},
	}
	prices := inferPriceGrid(legs)
	if prices == nil {
		t.Fatal("inferPriceGrid returned nil")
	}
	if prices[0] != 1000 { // max(1000, floor((2500-3000)/100)*100)
		t.Errorf("start = %v, want 1000 floor", prices[0])
	}
	if step := prices[1] - prices[0]; step != 50 {
		t.Errorf("step = %v, want clamped 50", step)
	}
}

func TestCustomExplicitUnderlyingUsesStandardSweep(t *testing.T) {
	legs := []models.Leg{
		{Type: models.LegCall, Action: models.ActionBuy, StrikePrice: 18000, Premium: 200, LotSize: 50},
	}
	res, err := Calculate(Request{
		StrategyType:    models.CustomStrategy,
		CustomLegs:      legs,
		UnderlyingPrice: 18000,
		RangePercent:    20,
		NumPoints:       21,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(res.Curve) != 21 {
		t.Fatalf("curve length = %d, want 21", len(res.Curve))
	}
	if math.Abs(res.Curve[0].Price-14400) > 0.01 || math.Abs(res.Curve[20].Price-21600) > 0.01 {
		t.Errorf("sweep = [%v, %v], want [14400, 21600]", res.Curve[0].Price, res.Curve[20].Price)
	}
}

func TestCustomLegAdditivity(t *testing.T) {
	legA := models.Leg{Type: models.LegCall, Action: models.ActionBuy, StrikePrice: 18000, Premium: 200, LotSize: 50}
	legB := models.Leg{Type: models.LegPut, Action: models.ActionSell, StrikePrice: 17500, Premium: 150, LotSize: 25}

	combined, err := Calculate(Request{
		StrategyType: models.CustomStrategy, CustomLegs: []models.Leg{legA, legB},
		UnderlyingPrice: 18000,
	})
	if err != nil {
		t.Fatalf("Calculate combined: %v", err)
	}
	onlyA, err := Calculate(Request{
		StrategyType: models.CustomStrategy, CustomLegs: []models.Leg{legA},
		UnderlyingPrice: 18000,
	})
	if err != nil {
		t.Fatalf("Calculate A: %v", err)
	}
	onlyB, err := Calculate(Request{
		StrategyType: models.CustomStrategy, CustomLegs: []models.Leg{legB},
		UnderlyingPrice: 18000,
	})
	if err != nil {
		t.Fatalf("Calculate B: %v", err)
	}

	for i := range combined.Curve {
		sum := onlyA.Curve[i].PnL + onlyB.Curve[i].PnL
		// Each curve rounds independently, so allow one unit of slack.
		if math.Abs(combined.Curve[i].PnL-sum) > 1 {
			t.Fatalf("additivity broken at %v: %v != %v + %v",
				combined.Curve[i].Price, combined.Curve[i].PnL, onlyA.Curve[i].PnL, onlyB.Curve[i].PnL)
		}
	}
}

func TestCustomRejectsMalformedLegs(t *testing.T) {
	tests := []struct {
		name string
		leg  models.Leg
	}{
		{"unknown type", models.Leg{Type: "SPREAD", Action: models.ActionBuy, StrikePrice: 18000, LotSize: 50}},
		{"unknown action", models.Leg{Type: models.LegCall, Action: "HOLD", StrikePrice: 18000, LotSize: 50}},
		{"negative lots", models.Leg{Type: models.LegCall, Action: models.ActionBuy, StrikePrice: 18000, LotSize: -50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(Request{StrategyType: models.CustomStrategy, CustomLegs: []models.Leg{tt.leg}})
			var legErr *apperrors.LegError
			if !apperrors.As(err, &legErr) {
				t.Fatalf("err = %v, want LegError", err)
			}
			if res != nil {
				t.Error("partial result returned with error")
			}
		})
	}
}

func TestCustomLegsWithoutUsablePricesFallBack(t *testing.T) {
	legs := []models.Leg{{Type: models.LegFutures, Action: models.ActionBuy, LotSize: 50}}
	res, err := Calculate(Request{StrategyType: models.CustomStrategy, CustomLegs: legs})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(res.Curve) != DefaultNumPoints {
		t.Fatalf("fallback curve length = %d, want %d", len(res.Curve), DefaultNumPoints)
	}
}
