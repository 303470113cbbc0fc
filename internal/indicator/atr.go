package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-ta/internal/types"
)

// ATR is the average true range: the true range of every row averaged exponentially with
// span equal to the period. A value requires period true ranges.
func ATR(in Input, p Param) ([]float64, error) {
	period, err := p.IntPeriod(types.IndicatorKindATR)
	if err != nil {
		return nil, err
	}

	return ewmMean(trueRange(in.Highs(), in.Lows(), in.Closes()), period, period), nil
}

// trueRange is max(high-low, |high-prev_close|, |low-prev_close|).
// The first row has no previous close and uses high-low.
func trueRange(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))

	for i := range closes {
		tr := highs[i] - lows[i]

		if i > 0 {
			prevClose := closes[i-1]
			tr = math.Max(
				math.Max(tr, math.Abs(highs[i]-prevClose)),
				math.Abs(lows[i]-prevClose),
			)
		}

		out[i] = tr
	}

	return out
}

// NewATR creates the average true range indicator.
func NewATR() Indicator {
	return New(types.IndicatorKindATR, ATR)
}
