package payoff

import (
	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
)

// template resolves a strategy type into its payoff function and the
// default center price for the sweep. Dispatch is a flat switch; each
// template owns its required-parameter shape and parses it up front.
func template(t models.StrategyType, params map[string]string) (payoffFunc, float64, error) {
	switch t {
	case models.CoveredCall:
		p, err := parseCoveredCall(params)
		if err != nil {
			return nil, 0, err
		}
		return p.payoff, p.FuturesPrice, nil
	case models.BullCallSpread:
		p, err := parseBullCallSpread(params)
		if err != nil {
			return nil, 0, err
		}
		return p.payoff, (p.LongCallStrike + p.ShortCallStrike) / 2, nil
	case models.IronCondor:
		p, err := parseIronCondor(params)
		if err != nil {
			return nil, 0, err
		}
		return p.payoff, (p.PutSellStrike + p.CallSellStrike) / 2, nil
	case models.LongStraddle:
		p, err := parseLongStraddle(params)
		if err != nil {
			return nil, 0, err
		}
		return p.payoff, p.StrikePrice, nil
	case models.ProtectivePut:
		p, err := parseProtectivePut(params)
		if err != nil {
			return nil, 0, err
		}
		return p.payoff, p.StockPrice, nil
	case models.ButterflySpread:
		p, err := parseButterflySpread(params)
		if err != nil {
			return nil, 0, err
		}
		return p.payoff, p.MiddleStrike, nil
	}
	return nil, 0, apperrors.Wrapf(apperrors.ErrUnknownStrategy, "%q", t)
}

// coveredCallParams: long futures, short call. The futures and call lot
// sizes are independently configurable; unequal sizes give a partially or
// over-covered position whose payoff keeps a slope above the strike.
type coveredCallParams struct {
	FuturesLotSize float64
	FuturesPrice   float64
	CallLotSize    float64
	CallStrike     float64
	Premium        float64
}

func parseCoveredCall(params map[string]string) (coveredCallParams, error) {
	p := newParamParser(params)
	cc := coveredCallParams{
		FuturesLotSize: p.float("futuresLotSize"),
		FuturesPrice:   p.float("futuresPrice"),
		CallLotSize:    p.float("callLotSize"),
		CallStrike:     p.float("callStrike"),
		Premium:        p.float("premium"),
	}
	return cc, p.err
}

func (p coveredCallParams) payoff(price float64) float64 {
	futuresPnL := (price - p.FuturesPrice) * p.FuturesLotSize
	var callPnL float64
	if price <= p.CallStrike {
		callPnL = p.Premium * p.CallLotSize
	} else {
		callPnL = p.Premium*p.CallLotSize - (price-p.CallStrike)*p.CallLotSize
	}
	return futuresPnL + callPnL
}

// bullCallSpreadParams: long call at the lower strike, short call at the
// higher strike, equal lot size.
type bullCallSpreadParams struct {
	LongCallStrike   float64
	ShortCallStrike  float64
	LotSize          float64
	LongCallPremium  float64
	ShortCallPremium float64
}

func parseBullCallSpread(params map[string]string) (bullCallSpreadParams, error) {
	p := newParamParser(params)
	bc := bullCallSpreadParams{
		LongCallStrike:   p.float("longCallStrike"),
		ShortCallStrike:  p.float("shortCallStrike"),
		LotSize:          p.float("lotSize"),
		LongCallPremium:  p.float("longCallPremium"),
		ShortCallPremium: p.float("shortCallPremium"),
	}
	return bc, p.err
}

func (p bullCallSpreadParams) payoff(price float64) float64 {
	var longPnL, shortPnL float64
	if price > p.LongCallStrike {
		longPnL = (price-p.LongCallStrike)*p.LotSize - p.LongCallPremium*p.LotSize
	} else {
		longPnL = -p.LongCallPremium * p.LotSize
	}
	if price > p.ShortCallStrike {
		shortPnL = p.ShortCallPremium*p.LotSize - (price-p.ShortCallStrike)*p.LotSize
	} else {
		shortPnL = p.ShortCallPremium * p.LotSize
	}
	return longPnL + shortPnL
}

// ironCondorParams: long put (low), short put (mid-low), short call
// (mid-high), long call (high). Valid input has
// putBuyStrike < putSellStrike <= callSellStrike < callBuyStrike; the
// ordering is not enforced, an inverted configuration simply produces a
// nonsensical curve.
type ironCondorParams struct {
	LotSize        float64
	PutBuyStrike   float64
	PutSellStrike  float64
	CallSellStrike float64
	CallBuyStrike  float64
	NetPremium     float64
}

func parseIronCondor(params map[string]string) (ironCondorParams, error) {
	p := newParamParser(params)
	ic := ironCondorParams{
		LotSize:        p.float("lotSize"),
		PutBuyStrike:   p.float("putBuyStrike"),
		PutSellStrike:  p.float("putSellStrike"),
		CallSellStrike: p.float("callSellStrike"),
		CallBuyStrike:  p.float("callBuyStrike"),
		NetPremium:     p.float("netPremium"),
	}
	return ic, p.err
}

func (p ironCondorParams) payoff(price float64) float64 {
	pnl := p.NetPremium * p.LotSize
	if price < p.PutBuyStrike {
		pnl += (p.PutBuyStrike - price) * p.LotSize
	}
	if price < p.PutSellStrike {
		pnl -= (p.PutSellStrike - price) * p.LotSize
	}
	if price > p.CallSellStrike {
		pnl -= (price - p.CallSellStrike) * p.LotSize
	}
	if price > p.CallBuyStrike {
		pnl += (price - p.CallBuyStrike) * p.LotSize
	}
	return pnl
}

// longStraddleParams: long call + long put at the same strike.
type longStraddleParams struct {
	StrikePrice float64
	CallLotSize float64
	PutLotSize  float64
	CallPremium float64
	PutPremium  float64
}

func parseLongStraddle(params map[string]string) (longStraddleParams, error) {
	p := newParamParser(params)
	ls := longStraddleParams{
		StrikePrice: p.float("strikePrice"),
		CallLotSize: p.float("callLotSize"),
		PutLotSize:  p.float("putLotSize"),
		CallPremium: p.float("callPremium"),
		PutPremium:  p.float("putPremium"),
	}
	return ls, p.err
}

func (p longStraddleParams) payoff(price float64) float64 {
	var callPnL, putPnL float64
	if price > p.StrikePrice {
		callPnL = (price-p.StrikePrice)*p.CallLotSize - p.CallPremium*p.CallLotSize
	} else {
		callPnL = -p.CallPremium * p.CallLotSize
	}
	if price < p.StrikePrice {
		putPnL = (p.StrikePrice-price)*p.PutLotSize - p.PutPremium*p.PutLotSize
	} else {
		putPnL = -p.PutPremium * p.PutLotSize
	}
	return callPnL + putPnL
}

// protectivePutParams: long stock + long put.
type protectivePutParams struct {
	StockLotSize float64
	StockPrice   float64
	PutStrike    float64
	PutLotSize   float64
	PutPremium   float64
}

func parseProtectivePut(params map[string]string) (protectivePutParams, error) {
	p := newParamParser(params)
	pp := protectivePutParams{
		StockLotSize: p.float("stockLotSize"),
		StockPrice:   p.float("stockPrice"),
		PutStrike:    p.float("putStrike"),
		PutLotSize:   p.float("putLotSize"),
		PutPremium:   p.float("putPremium"),
	}
	return pp, p.err
}

func (p protectivePutParams) payoff(price float64) float64 {
	stockPnL := (price - p.StockPrice) * p.StockLotSize
	var putPnL float64
	if price < p.PutStrike {
		putPnL = (p.PutStrike-price)*p.PutLotSize - p.PutPremium*p.PutLotSize
	} else {
		putPnL = -p.PutPremium * p.PutLotSize
	}
	return stockPnL + putPnL
}

// butterflySpreadParams: long one call at the lower strike, short two at
// the middle, long one at the upper, equal lot size. Valid input has
// lowerStrike < middleStrike < upperStrike; not enforced.
type butterflySpreadParams struct {
	LotSize       float64
	LowerStrike   float64
	MiddleStrike  float64
	UpperStrike   float64
	LowerPremium  float64
	MiddlePremium float64
	UpperPremium  float64
}

func parseButterflySpread(params map[string]string) (butterflySpreadParams, error) {
	p := newParamParser(params)
	bf := butterflySpreadParams{
		LotSize:       p.float("lotSize"),
		LowerStrike:   p.float("lowerStrike"),
		MiddleStrike:  p.float("middleStrike"),
		UpperStrike:   p.float("upperStrike"),
		LowerPremium:  p.float("lowerPremium"),
		MiddlePremium: p.float("middlePremium"),
		UpperPremium:  p.float("upperPremium"),
	}
	return bf, p.err
}

func (p butterflySpreadParams) payoff(price float64) float64 {
	var lowerPnL, middlePnL, upperPnL float64
	if price > p.LowerStrike {
		lowerPnL = (price-p.LowerStrike)*p.LotSize - p.LowerPremium*p.LotSize
	} else {
		lowerPnL = -p.LowerPremium * p.LotSize
	}
	if price > p.MiddleStrike {
		middlePnL = 2 * (p.MiddlePremium*p.LotSize - (price-p.MiddleStrike)*p.LotSize)
	} else {
		middlePnL = 2 * p.MiddlePremium * p.LotSize
	}
	if price > p.UpperStrike {
		upperPnL = (price-p.UpperStrike)*p.LotSize - p.UpperPremium*p.LotSize
	} else {
		upperPnL = -p.UpperPremium * p.LotSize
	}
	return lowerPnL + middlePnL + upperPnL
}
