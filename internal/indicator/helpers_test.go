package indicator

import (
	"time"
)

// pricesFromCloses builds one row per second with open=high=low=close.
func pricesFromCloses(closes ...float64) *Prices {
	p := &Prices{
		Time:  make([]time.Time, len(closes)),
		Open:  make([]float64, len(closes)),
		High:  make([]float64, len(closes)),
		Low:   make([]float64, len(closes)),
		Close: make([]float64, len(closes)),
	}

	for i, c := range closes {
		p.Time[i] = time.Unix(int64(i), 0).UTC()
		p.Open[i] = c
		p.High[i] = c
		p.Low[i] = c
		p.Close[i] = c
	}

	return p
}

// pricesFromHLC builds one row per second from highs, lows and closes.
func pricesFromHLC(highs, lows, closes []float64) *Prices {
	p := pricesFromCloses(closes...)
	copy(p.High, highs)
	copy(p.Low, lows)

	return p
}
