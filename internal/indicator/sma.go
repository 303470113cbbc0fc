package indicator

import (
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// SMA is the simple moving average of the closing price.
//
// An integer parameter averages the trailing period rows and is undefined until period rows exist.
// A time offset parameter ("1min", "30s", "1h") averages every row inside the trailing time window
// and is defined from the first row.
func SMA(in Input, p Param) ([]float64, error) {
	if p.Period.IsNone() {
		window, err := ParseOffsetAlias(p.Token)
		if err != nil {
			return nil, err
		}

		return timeWindowMean(in.Times(), in.Closes(), window), nil
	}

	period, err := p.IntPeriod(types.IndicatorKindSMA)
	if err != nil {
		return nil, err
	}

	return rollingMean(in.Closes(), period), nil
}

// NewSMA creates the simple moving average indicator.
func NewSMA() Indicator {
	return New(types.IndicatorKindSMA, SMA)
}
