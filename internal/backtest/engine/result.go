package engine

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/internal/version"
	"github.com/shopspring/decimal"
)

// ResultRow is one row of the result table: the accounting snapshot of a record,
// its close price and the buy-and-hold baseline at that time.
type ResultRow struct {
	types.OrderContext
	Close   float64
	BuyHold float64
}

// Result is the outcome of one backtest run.
type Result struct {
	ID       string
	Strategy string
	Rows     []ResultRow
	// ResultsFolder is where the run was persisted, empty when nothing was written.
	ResultsFolder string
}

// NewResult pairs every order context with its close price and computes the buy-and-hold column.
// closes must be aligned with contexts.
func NewResult(id string, strategyName string, closes []float64, contexts []types.OrderContext) *Result {
	rows := make([]ResultRow, len(contexts))
	if len(contexts) == 0 {
		return &Result{ID: id, Strategy: strategyName, Rows: rows}
	}

	// all capital ever supplied, converted at the first price
	units := contexts[len(contexts)-1].TotalFundsOverTime / closes[0]

	for i, orderContext := range contexts {
		rows[i] = ResultRow{
			OrderContext: orderContext,
			Close:        closes[i],
			BuyHold:      closes[i] * units,
		}
	}

	return &Result{ID: id, Strategy: strategyName, Rows: rows}
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.Rows)
}

// Last returns the final row. It panics on an empty result.
func (r *Result) Last() ResultRow {
	return r.Rows[len(r.Rows)-1]
}

// Stats summarises the run.
func (r *Result) Stats() types.BacktestStats {
	stats := types.BacktestStats{
		ID:            r.ID,
		Timestamp:     time.Now().UTC(),
		EngineVersion: version.GetVersion(),
		Strategy:      r.Strategy,
		Rows:          len(r.Rows),
	}

	if len(r.Rows) == 0 {
		return stats
	}

	for _, row := range r.Rows {
		if row.Order.IsNone() {
			continue
		}

		order := row.Order.Unwrap()
		stats.Orders.Proposed++

		if order.IsFilled() {
			stats.Orders.Filled++

			continue
		}

		stats.Orders.Rejected++

		switch order.Reason {
		case types.OrderReasonBelowMinAmount:
			stats.Orders.BelowMinAmount++
		case types.OrderReasonInsufficientFunds:
			stats.Orders.InsufficientFunds++
		case types.OrderReasonInsufficientBalance:
			stats.Orders.InsufficientBalance++
		}
	}

	first, last := r.Rows[0], r.Last()
	stats.StartTime = first.Time
	stats.EndTime = last.Time
	stats.FinalFunds = last.Funds
	stats.FinalBalance = last.Balance
	stats.FinalWorth = last.Worth
	stats.TotalFundsOverTime = last.TotalFundsOverTime
	stats.FinalBuyAndHold = last.BuyHold
	stats.Return = relativeReturn(last.Worth, last.TotalFundsOverTime)
	stats.BuyAndHoldReturn = relativeReturn(last.BuyHold, last.TotalFundsOverTime)
	stats.MaxDrawdown = r.maxDrawdown()

	return stats
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func relativeReturn(value, invested float64) float64 {
	if invested == 0 {
		return 0
	}

	if !isFinite(value) || !isFinite(invested) {
		return math.NaN()
	}

	ret, _ := decimal.NewFromFloat(value).
		Div(decimal.NewFromFloat(invested)).
		Sub(decimal.NewFromInt(1)).
		Round(8).
		Float64()

	return ret
}

func (r *Result) maxDrawdown() float64 {
	peak := decimal.Zero
	maxDrawdown := decimal.Zero

	for _, row := range r.Rows {
		// rows priced with undefined closes carry no valuation
		if !isFinite(row.Worth) {
			continue
		}

		worth := decimal.NewFromFloat(row.Worth)
		if worth.GreaterThan(peak) {
			peak = worth
		}

		if peak.IsZero() {
			continue
		}

		drawdown := peak.Sub(worth).Div(peak)
		if drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}

	result, _ := maxDrawdown.Round(8).Float64()

	return result
}
