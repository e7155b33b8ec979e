package payoff

import (
	"errors"
	"math"
	"strconv"
	"strings"

	apperrors "options-payoff/internal/errors"
)

var errNotFinite = errors.New("value is not a finite number")

// paramParser parses string-encoded numeric parameters at the calculation
// boundary. The first failure is latched so a template parses all of its
// fields in one expression and checks err once.
type paramParser struct {
	params map[string]string
	err    error
}

func newParamParser(params map[string]string) *paramParser {
	return &paramParser{params: params}
}

// float returns the named parameter as a float64. A missing name or a
// non-finite value records a ParameterError.
func (p *paramParser) float(name string) float64 {
	if p.err != nil {
		return 0
	}
	raw, ok := p.params[name]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		p.err = apperrors.NewParameterError(name, "", nil)
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = apperrors.NewParameterError(name, raw, err)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.err = apperrors.NewParameterError(name, raw, errNotFinite)
		return 0
	}
	return v
}
