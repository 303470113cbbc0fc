package strategy

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/internal/utils"
)

// SMACrossoverConfig configures SMACrossoverStrategy.
type SMACrossoverConfig struct {
	Fast     string  `yaml:"fast" json:"fast" jsonschema:"title=Fast,description=Label of the fast moving average,default=sma_10" validate:"required"`
	Slow     string  `yaml:"slow" json:"slow" jsonschema:"title=Slow,description=Label of the slow moving average,default=sma_30" validate:"required"`
	Fraction float64 `yaml:"fraction" json:"fraction" jsonschema:"title=Fraction,description=Share of funds or balance traded on a cross,default=1" validate:"gte=0,lte=1"`
}

// SMACrossoverStrategy buys when the fast average crosses above the slow one
// and sells when it crosses back below.
type SMACrossoverStrategy struct {
	Base
	config    SMACrossoverConfig
	lastAbove optional.Option[bool]
}

// NewSMACrossoverStrategy creates a crossover strategy. A zero Fraction trades everything.
func NewSMACrossoverStrategy(config SMACrossoverConfig) *SMACrossoverStrategy {
	if config.Fraction == 0 {
		config.Fraction = 1
	}

	return &SMACrossoverStrategy{config: config}
}

// Name implements Strategy.
func (s *SMACrossoverStrategy) Name() string {
	return "SMACrossover"
}

// Indicators implements IndicatorConsumer.
func (s *SMACrossoverStrategy) Indicators() []string {
	return []string{s.config.Fast, s.config.Slow}
}

// GenerateOrder implements Strategy.
func (s *SMACrossoverStrategy) GenerateOrder(row series.Row, funds, balance float64) (optional.Option[types.ProposedOrder], error) {
	fast := row.Value(s.config.Fast)
	slow := row.Value(s.config.Slow)

	if math.IsNaN(fast) || math.IsNaN(slow) || row.Close <= 0 {
		return optional.None[types.ProposedOrder](), nil
	}

	above := fast > slow
	previous := s.lastAbove
	s.lastAbove = optional.Some(above)

	if previous.IsNone() || previous.Unwrap() == above {
		return optional.None[types.ProposedOrder](), nil
	}

	if above {
		return optional.Some(types.Buy(utils.CalculateOrderQuantityByPercentage(funds, row.Close, s.config.Fraction))), nil
	}

	return optional.Some(types.Sell(balance * s.config.Fraction)), nil
}
