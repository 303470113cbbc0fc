package indicator

import (
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// HiLo is the ratio between the lowest low and the highest high of the trailing period rows.
func HiLo(in Input, p Param) ([]float64, error) {
	period, err := p.IntPeriod(types.IndicatorKindHiLo)
	if err != nil {
		return nil, err
	}

	lows := rollingExtreme(in.Lows(), period, true)
	highs := rollingExtreme(in.Highs(), period, false)

	out := make([]float64, len(lows))
	for i := range out {
		out[i] = lows[i] / highs[i]
	}

	return out, nil
}

// NewHiLo creates the high-low price ratio indicator.
func NewHiLo() Indicator {
	return New(types.IndicatorKindHiLo, HiLo)
}
