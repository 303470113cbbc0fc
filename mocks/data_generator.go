package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-ta/internal/types"
)

// DataGenerator generates realistic price records for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how price records are generated.
type GeneratorConfig struct {
	// StartTime is the beginning of the series
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of records to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical move per bar)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:    time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:     time.Minute,
		Count:        10000,
		InitialPrice: 100.0,
		Volatility:   0.002, // 0.2% per bar
		Trend:        0.0,   // neutral
	}
}

// Generate creates price records based on the configuration.
// The generated data follows a geometric Brownian motion model for realistic price movements.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.PriceRecord {
	data := make([]types.PriceRecord, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Using Box-Muller transform for normal distribution
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count) // Distribute trend across bars

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99 // Prevent negative prices
		}

		// High and low are within the open-close range plus some extension
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		data[i] = types.PriceRecord{
			Time:  currentTime,
			Open:  roundToDecimals(open, 4),
			High:  roundToDecimals(high, 4),
			Low:   roundToDecimals(low, 4),
			Close: roundToDecimals(close, 4),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// Constant returns count one-second records that all trade at price.
func Constant(count int, price float64) []types.PriceRecord {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = price
	}

	return FromCloses(closes)
}

// Linear returns count one-second records with close = i * slope, starting at i = 0.
func Linear(count int, slope float64) []types.PriceRecord {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = float64(i) * slope
	}

	return FromCloses(closes)
}

// FromCloses builds one record per second starting at the Unix epoch.
// Open, high, low and close all equal the given close.
func FromCloses(closes []float64) []types.PriceRecord {
	records := make([]types.PriceRecord, len(closes))
	for i, c := range closes {
		records[i] = types.NewPriceRecord(int64(i), c, c, c, c)
	}

	return records
}

// Generate10K is a convenience function to generate 10,000 records
// with default settings for benchmarking.
func Generate10K() []types.PriceRecord {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 10000

	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
