// Package strategy defines the contract between the backtest engine and trading strategies.
//
// A Strategy sees one row at a time together with the funds and balance available right before
// that row. Strategies may keep private state between calls; the engine never inspects it.
package strategy

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Strategy proposes at most one order per row.
type Strategy interface {
	// Name returns the name of the strategy.
	Name() string
	// GenerateOrder returns the order to place at row, or None for no action.
	// Returning an error aborts the backtest.
	GenerateOrder(row series.Row, funds, balance float64) (optional.Option[types.ProposedOrder], error)
}

// FundsReplenisher is implemented by strategies that add capital over time.
// ReplenishFunds is called for every row before GenerateOrder.
type FundsReplenisher interface {
	ReplenishFunds(row series.Row) (float64, error)
}

// IndicatorConsumer is implemented by strategies that read indicator columns.
// The labels are added to the series the strategy runs over.
type IndicatorConsumer interface {
	Indicators() []string
}

// Base can be embedded to get a replenisher that never adds funds.
type Base struct{}

// ReplenishFunds implements FundsReplenisher.
func (Base) ReplenishFunds(_ series.Row) (float64, error) {
	return 0, nil
}

// Replenish returns the amount s adds at row. Strategies without a replenisher add nothing.
// A negative or non-finite amount is reported as a strategy failure.
func Replenish(s Strategy, row series.Row) (float64, error) {
	replenisher, ok := s.(FundsReplenisher)
	if !ok {
		return 0, nil
	}

	amount, err := replenisher.ReplenishFunds(row)
	if err != nil {
		return 0, err
	}

	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.Newf(errors.ErrCodeStrategyRuntimeError, "%s: replenished an invalid amount %v", s.Name(), amount)
	}

	return amount, nil
}

// RequiredIndicators returns the indicator labels s reads, if it declares any.
func RequiredIndicators(s Strategy) []string {
	consumer, ok := s.(IndicatorConsumer)
	if !ok {
		return nil
	}

	return consumer.Indicators()
}

// ReplenishingStrategy is a Strategy that also adds capital over time.
type ReplenishingStrategy interface {
	Strategy
	FundsReplenisher
}
