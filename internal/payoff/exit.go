package payoff

import (
	"math"

	"options-payoff/internal/models"
)

// ExitPnL computes realized profit/loss from actual exits, a single point
// per leg rather than a sweep. For options the exit price is the premium
// the position was closed at. Legs without exit data stay open and are
// excluded from the total; this answers "what did closing earn", not the
// at-expiration question the payoff curve answers.
func ExitPnL(legs []models.Leg) models.ExitResult {
	var result models.ExitResult
	for _, leg := range legs {
		if !leg.HasExit() {
			result.OpenLegs++
			continue
		}

		exit := *leg.ExitPrice
		var pnl float64
		switch leg.Type {
		case models.LegFutures:
			if leg.Action == models.ActionSell {
				pnl = (leg.EntryPrice - exit) * leg.LotSize
			} else {
				pnl = (exit - leg.EntryPrice) * leg.LotSize
			}
		case models.LegCall, models.LegPut:
			if leg.Action == models.ActionSell {
				pnl = (leg.Premium - exit) * leg.LotSize
			} else {
				pnl = (exit - leg.Premium) * leg.LotSize
			}
		}

		pnl = math.Round(pnl)
		result.Closed = append(result.Closed, models.LegExit{Leg: leg, PnL: pnl})
		result.TotalPnL += pnl
	}
	return result
}
