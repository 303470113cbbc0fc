package indicator

import (
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// EMA is the exponential moving average of the closing price with span equal to the period.
// Weights are adjusted for the number of observations, alpha = 2/(period+1), and a value is
// produced once period-1 closing prices have been observed.
func EMA(in Input, p Param) ([]float64, error) {
	period, err := p.IntPeriod(types.IndicatorKindEMA)
	if err != nil {
		return nil, err
	}

	return ewmMean(in.Closes(), period, period-1), nil
}

// NewEMA creates the exponential moving average indicator.
func NewEMA() Indicator {
	return New(types.IndicatorKindEMA, EMA)
}
