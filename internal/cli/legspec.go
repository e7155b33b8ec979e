package cli

import (
	"fmt"
	"strconv"
	"strings"

	"options-payoff/internal/models"
)

// parseLegSpec parses a leg flag of the form
//
//	TYPE:ACTION:price:premium:lots[:exit]
//
// TYPE is FUT, CE, or PE; ACTION is BUY or SELL. For FUT legs the price
// field is the entry price and premium must be 0; for CE/PE legs it is
// the strike price. The optional sixth field is an exit price and marks
// the leg closed.
func parseLegSpec(spec string) (models.Leg, error) {
	fields := strings.Split(spec, ":")
	if len(fields) < 5 || len(fields) > 6 {
		return models.Leg{}, fmt.Errorf("leg %q: expected TYPE:ACTION:price:premium:lots[:exit]", spec)
	}

	legType := models.LegType(strings.ToUpper(fields[0]))
	switch legType {
	case models.LegFutures, models.LegCall, models.LegPut:
	default:
		return models.Leg{}, fmt.Errorf("leg %q: type must be FUT, CE, or PE", spec)
	}

	action := models.LegAction(strings.ToUpper(fields[1]))
	if action != models.ActionBuy && action != models.ActionSell {
		return models.Leg{}, fmt.Errorf("leg %q: action must be BUY or SELL", spec)
	}

	price, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return models.Leg{}, fmt.Errorf("leg %q: invalid price %q", spec, fields[2])
	}
	premium, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return models.Leg{}, fmt.Errorf("leg %q: invalid premium %q", spec, fields[3])
	}
	lots, err := strconv.ParseFloat(fields[4], 64)
	if err != nil || lots <= 0 {
		return models.Leg{}, fmt.Errorf("leg %q: invalid lot size %q", spec, fields[4])
	}

	leg := models.Leg{
		Type:    legType,
		Action:  action,
		LotSize: lots,
	}
	if legType == models.LegFutures {
		leg.EntryPrice = price
	} else {
		leg.StrikePrice = price
		leg.Premium = premium
	}

	if len(fields) == 6 {
		exit, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return models.Leg{}, fmt.Errorf("leg %q: invalid exit price %q", spec, fields[5])
		}
		leg.ExitPrice = &exit
	}
	return leg, nil
}

// parseLegSpecs parses a list of leg flags, failing on the first bad one.
func parseLegSpecs(specs []string) ([]models.Leg, error) {
	legs := make([]models.Leg, 0, len(specs))
	for _, spec := range specs {
		leg, err := parseLegSpec(spec)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// describeLeg renders a one-line human-readable leg summary.
func describeLeg(leg models.Leg) string {
	switch leg.Type {
	case models.LegFutures:
		return fmt.Sprintf("%-4s FUT @ %s x %g", leg.Action, FormatPrice(leg.EntryPrice), leg.LotSize)
	default:
		return fmt.Sprintf("%-4s %g %s @ %s x %g",
			leg.Action, leg.StrikePrice, leg.Type, FormatPrice(leg.Premium), leg.LotSize)
	}
}
