package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// MinimumOrderConfig configures MinimumOrderStrategy.
type MinimumOrderConfig struct {
	Decision types.Decision `yaml:"decision" json:"decision" jsonschema:"title=Decision,enum=BUY,enum=SELL,default=BUY" validate:"omitempty,oneof=BUY SELL"`
	Amount   float64        `yaml:"amount" json:"amount" jsonschema:"title=Amount,description=Units of the asset ordered on every row" validate:"gte=0"`
}

// MinimumOrderStrategy places the same order on every row.
// It is mostly useful for exercising the minimum amount and affordability checks.
type MinimumOrderStrategy struct {
	Base
	config MinimumOrderConfig
}

// NewMinimumOrderStrategy creates a strategy that orders config.Amount units on every row.
func NewMinimumOrderStrategy(config MinimumOrderConfig) *MinimumOrderStrategy {
	if config.Decision == "" {
		config.Decision = types.DecisionBuy
	}

	return &MinimumOrderStrategy{config: config}
}

// Name implements Strategy.
func (s *MinimumOrderStrategy) Name() string {
	return "MinimumOrder"
}

// GenerateOrder implements Strategy.
func (s *MinimumOrderStrategy) GenerateOrder(_ series.Row, _, _ float64) (optional.Option[types.ProposedOrder], error) {
	return optional.Some(types.ProposedOrder{Decision: s.config.Decision, Amount: s.config.Amount}), nil
}
