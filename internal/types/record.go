package types

import "time"

// PriceRecord is one OHLC row of the input series.
type PriceRecord struct {
	Time  time.Time `yaml:"time" json:"time" csv:"time"`
	Open  float64   `yaml:"open" json:"open" csv:"open"`
	High  float64   `yaml:"high" json:"high" csv:"high"`
	Low   float64   `yaml:"low" json:"low" csv:"low"`
	Close float64   `yaml:"close" json:"close" csv:"close"`
}

// NewPriceRecord builds a record from a unix timestamp in seconds.
func NewPriceRecord(seconds int64, open, high, low, close float64) PriceRecord {
	return PriceRecord{
		Time:  time.Unix(seconds, 0).UTC(),
		Open:  open,
		High:  high,
		Low:   low,
		Close: close,
	}
}
