package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/internal/utils"
)

// DollarCostAveragingConfig configures DollarCostAveragingStrategy.
type DollarCostAveragingConfig struct {
	Contribution float64 `yaml:"contribution" json:"contribution" jsonschema:"title=Contribution,description=Funds added on every row" validate:"gte=0"`
}

// DollarCostAveragingStrategy adds a fixed contribution on every row and spends all available funds on the asset.
type DollarCostAveragingStrategy struct {
	config DollarCostAveragingConfig
}

// NewDollarCostAveragingStrategy creates a dollar cost averaging strategy.
func NewDollarCostAveragingStrategy(config DollarCostAveragingConfig) *DollarCostAveragingStrategy {
	return &DollarCostAveragingStrategy{config: config}
}

// Name implements Strategy.
func (s *DollarCostAveragingStrategy) Name() string {
	return "DollarCostAveraging"
}

// ReplenishFunds implements FundsReplenisher.
func (s *DollarCostAveragingStrategy) ReplenishFunds(_ series.Row) (float64, error) {
	return s.config.Contribution, nil
}

// GenerateOrder implements Strategy.
func (s *DollarCostAveragingStrategy) GenerateOrder(row series.Row, funds, _ float64) (optional.Option[types.ProposedOrder], error) {
	amount := utils.CalculateMaxQuantity(funds, row.Close)
	if amount == 0 {
		return optional.None[types.ProposedOrder](), nil
	}

	return optional.Some(types.Buy(amount)), nil
}
