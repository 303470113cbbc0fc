package engine

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/series"
	"github.com/rxtech-lab/argo-ta/internal/strategy"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// BacktestState is the accounting state threaded from one row to the next.
// It is a value: every transition returns a new state.
type BacktestState struct {
	// Funds is the liquid capital available for buying.
	Funds float64
	// Balance is the quantity of the asset held.
	Balance float64
	// TotalFundsOverTime is the initial funds plus every replenishment so far.
	TotalFundsOverTime float64
}

// NewBacktestState returns the state before the first row.
func NewBacktestState(funds, balance float64) BacktestState {
	return BacktestState{
		Funds:              funds,
		Balance:            balance,
		TotalFundsOverTime: funds,
	}
}

// Worth values the state at price.
func (s BacktestState) Worth(price float64) float64 {
	return s.Funds + s.Balance*price
}

// Replenish adds amount to the funds and to the total funds supplied.
func (s BacktestState) Replenish(amount float64) BacktestState {
	s.Funds += amount
	s.TotalFundsOverTime += amount

	return s
}

// Resolve decides the terminal status of order at price.
// Orders below minAmount are rejected before affordability is considered.
// A rejected order returns the state unchanged.
func (s BacktestState) Resolve(order types.ProposedOrder, price float64, minAmount float64) (BacktestState, types.ResolvedOrder) {
	if order.Amount < minAmount {
		return s, order.Reject(types.OrderReasonBelowMinAmount)
	}

	notional := price * order.Amount

	switch order.Decision {
	case types.DecisionBuy:
		if notional <= s.Funds {
			s.Funds -= notional
			s.Balance += order.Amount

			return s, order.Fill()
		}

		return s, order.Reject(types.OrderReasonInsufficientFunds)
	case types.DecisionSell:
		if order.Amount <= s.Balance {
			s.Balance -= order.Amount
			s.Funds += notional

			return s, order.Fill()
		}

		return s, order.Reject(types.OrderReasonInsufficientBalance)
	}

	// Validate rejects unknown decisions before orders get here.
	return s, order.Reject("")
}

// Step processes a single row: replenish, ask the strategy for an order, resolve it and snapshot.
// Any strategy error, including an invalid order, is returned as ErrCodeStrategyRuntimeError
// wrapping a RowError that locates the row.
func Step(state BacktestState, row series.Row, s strategy.Strategy, minAmount float64) (BacktestState, types.OrderContext, error) {
	replenishment, err := strategy.Replenish(s, row)
	if err != nil {
		return state, types.OrderContext{}, strategyError(s, row, err)
	}

	state = state.Replenish(replenishment)

	proposed, err := s.GenerateOrder(row, state.Funds, state.Balance)
	if err != nil {
		return state, types.OrderContext{}, strategyError(s, row, err)
	}

	orderContext := types.OrderContext{
		Time:  row.Time,
		Order: optional.None[types.ResolvedOrder](),
	}

	if proposed.IsSome() {
		order := proposed.Unwrap()
		if err := order.Validate(); err != nil {
			return state, types.OrderContext{}, strategyError(s, row, err)
		}

		var resolved types.ResolvedOrder

		state, resolved = state.Resolve(order, row.Close, minAmount)
		orderContext.Order = optional.Some(resolved)
	}

	orderContext.Funds = state.Funds
	orderContext.Balance = state.Balance
	orderContext.Worth = state.Worth(row.Close)
	orderContext.TotalFundsOverTime = state.TotalFundsOverTime

	return state, orderContext, nil
}

// StepCallback observes every row once it has been processed. Returning an error aborts the fold.
type StepCallback func(row series.Row, orderContext types.OrderContext) error

// Fold runs Step over rows in order, starting from initial.
// It returns the final state together with one order context per row.
// The context is checked before every row; on cancellation or error no contexts are returned.
func Fold(
	ctx context.Context,
	rows func(yield func(series.Row) bool),
	s strategy.Strategy,
	initial BacktestState,
	minAmount float64,
	onStep StepCallback,
) (BacktestState, []types.OrderContext, error) {
	state := initial

	var (
		contexts []types.OrderContext
		foldErr  error
	)

	for row := range rows {
		if err := ctx.Err(); err != nil {
			foldErr = errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", err)

			break
		}

		next, orderContext, err := Step(state, row, s, minAmount)
		if err != nil {
			foldErr = err

			break
		}

		if onStep != nil {
			if err := onStep(row, orderContext); err != nil {
				foldErr = errors.Wrap(errors.ErrCodeCallbackFailed, "step callback failed", err)

				break
			}
		}

		state = next
		contexts = append(contexts, orderContext)
	}

	if foldErr != nil {
		return initial, nil, foldErr
	}

	return state, contexts, nil
}

func strategyError(s strategy.Strategy, row series.Row, err error) error {
	return errors.Wrapf(errors.ErrCodeStrategyRuntimeError, errors.NewRowError(row.Index, row.Time, err), "strategy %s failed", s.Name())
}
