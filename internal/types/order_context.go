package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// OrderContext is the accounting snapshot taken right after one record has been processed.
type OrderContext struct {
	Time time.Time
	// Order is None when the strategy took no action on this record.
	Order optional.Option[ResolvedOrder]
	// Funds is the liquid capital available for buying.
	Funds float64
	// Balance is the quantity of the asset currently held.
	Balance float64
	// Worth is Funds + Balance * close of this record.
	Worth float64
	// TotalFundsOverTime is the initial funds plus every replenishment so far.
	TotalFundsOverTime float64
}
