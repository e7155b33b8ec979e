package payoff

import (
	"options-payoff/internal/models"
)

// Metrics derives max profit, max loss, and break-even prices from a curve.
func Metrics(curve models.PayoffCurve) models.PayoffMetrics {
	if len(curve) == 0 {
		return models.PayoffMetrics{}
	}

	maxProfit, maxLoss := curve[0].PnL, curve[0].PnL
	for _, pt := range curve[1:] {
		if pt.PnL > maxProfit {
			maxProfit = pt.PnL
		}
		if pt.PnL < maxLoss {
			maxLoss = pt.PnL
		}
	}

	return models.PayoffMetrics{
		MaxProfit:  maxProfit,
		MaxLoss:    maxLoss,
		BreakEvens: BreakEvens(curve),
	}
}

// BreakEvens finds the prices where the curve crosses zero, by linear
// interpolation between adjacent points with opposite P&L signs. The
// accuracy is bounded by the sweep resolution; a strategy curve can have
// zero, one, or two crossings (condors and straddles have two).
func BreakEvens(curve models.PayoffCurve) []float64 {
	var evens []float64
	for i := 1; i < len(curve); i++ {
		prev, curr := curve[i-1], curve[i]
		if prev.PnL == curr.PnL {
			continue
		}
		if (prev.PnL <= 0 && curr.PnL >= 0) || (prev.PnL >= 0 && curr.PnL <= 0) {
			be := prev.Price + (curr.Price-prev.Price)*(-prev.PnL)/(curr.PnL-prev.PnL)
			evens = append(evens, round2(be))
		}
	}
	return evens
}
