// Package models defines the domain types shared across the application.
package models

import "time"

// StrategyType identifies one of the supported strategy templates.
type StrategyType string

// Supported strategy types.
const (
	CoveredCall     StrategyType = "covered-call"
	BullCallSpread  StrategyType = "bull-call-spread"
	IronCondor      StrategyType = "iron-condor"
	LongStraddle    StrategyType = "long-straddle"
	ProtectivePut   StrategyType = "protective-put"
	ButterflySpread StrategyType = "butterfly-spread"
	CustomStrategy  StrategyType = "custom-strategy"
)

// StrategyTypes lists all supported strategy types in display order.
var StrategyTypes = []StrategyType{
	CoveredCall,
	BullCallSpread,
	IronCondor,
	LongStraddle,
	ProtectivePut,
	ButterflySpread,
	CustomStrategy,
}

// Valid reports whether t is a known strategy type.
func (t StrategyType) Valid() bool {
	for _, s := range StrategyTypes {
		if t == s {
			return true
		}
	}
	return false
}

// LegType identifies the instrument of a custom strategy leg.
type LegType string

// Leg instrument types.
const (
	LegFutures LegType = "FUT"
	LegCall    LegType = "CE"
	LegPut     LegType = "PE"
)

// LegAction is the direction of a leg.
type LegAction string

// Leg directions.
const (
	ActionBuy  LegAction = "BUY"
	ActionSell LegAction = "SELL"
)

// Leg represents one position within a custom multi-leg strategy.
// StrikePrice and Premium apply to CE/PE legs; EntryPrice applies to FUT
// legs. ExitPrice and ExitDate are used only by the realized-P&L
// calculation, never by the expiration payoff curve. ExitPrice is a
// pointer so that closing at exactly zero (a short option expiring
// worthless) is distinguishable from an open leg.
type Leg struct {
	Type        LegType   `json:"type"`
	Action      LegAction `json:"action"`
	StrikePrice float64   `json:"strikePrice,omitempty"`
	EntryPrice  float64   `json:"entryPrice,omitempty"`
	LotSize     float64   `json:"lotSize"`
	Premium     float64   `json:"premium,omitempty"`
	ExitPrice   *float64  `json:"exitPrice,omitempty"`
	ExitDate    string    `json:"exitDate,omitempty"`
}

// HasExit reports whether the leg was closed and counts toward realized
// P&L. An exit price is required; ExitDate alone is metadata.
func (l Leg) HasExit() bool {
	return l.ExitPrice != nil
}

// PricePoint is one sample of a payoff curve.
type PricePoint struct {
	Price float64 `json:"price"`
	PnL   float64 `json:"pnl"`
}

// PayoffCurve is an ordered sequence of price points with strictly
// increasing prices. It is regenerated on every calculation and never
// mutated in place.
type PayoffCurve []PricePoint

// PayoffMetrics holds scalars derived from a payoff curve.
type PayoffMetrics struct {
	MaxProfit  float64   `json:"maxProfit"`
	MaxLoss    float64   `json:"maxLoss"`
	BreakEvens []float64 `json:"breakEvenPrices"`
}

// LegExit is the realized P&L of a single closed leg.
type LegExit struct {
	Leg Leg     `json:"leg"`
	PnL float64 `json:"pnl"`
}

// ExitResult is the outcome of a realized-P&L calculation. Legs without
// exit data remain open and are excluded from the total.
type ExitResult struct {
	Closed   []LegExit `json:"closed"`
	OpenLegs int       `json:"openLegs"`
	TotalPnL float64   `json:"totalPnl"`
}

// Strategy is a saved strategy configuration.
type Strategy struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Type       StrategyType      `json:"strategyType"`
	EntryDate  string            `json:"entryDate"`
	ExpiryDate string            `json:"expiryDate"`
	Parameters map[string]string `json:"parameters"`
	CustomLegs []Leg             `json:"customLegs,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}
