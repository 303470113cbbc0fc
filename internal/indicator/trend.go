package indicator

import (
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Trend is the rolling least-squares slope of the closing price against the row ordinal
// over the trailing period rows. The slope is the price change per row.
func Trend(in Input, p Param) ([]float64, error) {
	period, err := p.IntPeriod(types.IndicatorKindTrend)
	if err != nil {
		return nil, err
	}

	if period < 2 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "%s: a slope needs at least 2 rows, got %d", types.IndicatorKindTrend, period)
	}

	closes := in.Closes()
	out := nanSeries(len(closes))

	// x is centred on the window so only y needs a mean per row
	xMean := float64(period-1) / 2
	sxx := 0.0

	for k := 0; k < period; k++ {
		dx := float64(k) - xMean
		sxx += dx * dx
	}

	for i := period - 1; i < len(closes); i++ {
		window := closes[i-period+1 : i+1]

		yMean := 0.0
		for _, y := range window {
			yMean += y
		}

		yMean /= float64(period)

		sxy := 0.0
		for k, y := range window {
			sxy += (float64(k) - xMean) * (y - yMean)
		}

		out[i] = sxy / sxx
	}

	return out, nil
}

// NewTrend creates the linear trend indicator.
func NewTrend() Indicator {
	return New(types.IndicatorKindTrend, Trend)
}
