package indicator

import (
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// StochK is the stochastic oscillator %K built on moving averages:
// (SMA(close) - SMA(low)) / (SMA(high) - SMA(low)).
// A flat window divides by zero and yields NaN (or Inf) instead of an error.
func StochK(in Input, p Param) ([]float64, error) {
	period, err := p.IntPeriod(types.IndicatorKindStochK)
	if err != nil {
		return nil, err
	}

	closes := rollingMean(in.Closes(), period)
	lows := rollingMean(in.Lows(), period)
	highs := rollingMean(in.Highs(), period)

	out := make([]float64, len(closes))
	for i := range out {
		out[i] = (closes[i] - lows[i]) / (highs[i] - lows[i])
	}

	return out, nil
}

// NewStochK creates the stochastic oscillator %K indicator.
func NewStochK() Indicator {
	return New(types.IndicatorKindStochK, StochK)
}
