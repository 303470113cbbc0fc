package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

type Decision string

type OrderStatus string

const (
	DecisionBuy  Decision = "BUY"
	DecisionSell Decision = "SELL"
)

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

const (
	OrderReasonBelowMinAmount      string = "below_min_amount"
	OrderReasonInsufficientFunds   string = "insufficient_funds"
	OrderReasonInsufficientBalance string = "insufficient_balance"
)

// ProposedOrder is the trading intent a strategy returns for a single record.
// It is never modified once created; the engine resolves it into a ResolvedOrder.
type ProposedOrder struct {
	Decision Decision `yaml:"decision" json:"decision" csv:"decision" validate:"required,oneof=BUY SELL"`
	Amount   float64  `yaml:"amount" json:"amount" csv:"amount" validate:"gte=0"`
}

// ResolvedOrder is a proposed order together with the terminal status the engine assigned to it.
type ResolvedOrder struct {
	ProposedOrder `yaml:",inline"`
	Status        OrderStatus `yaml:"status" json:"status" csv:"status"`
	// Reason is empty for filled orders and explains why an order was rejected otherwise.
	Reason string `yaml:"reason" json:"reason" csv:"reason"`
}

// Buy proposes buying amount units of the asset.
func Buy(amount float64) ProposedOrder {
	return ProposedOrder{Decision: DecisionBuy, Amount: amount}
}

// Sell proposes selling amount units of the asset.
func Sell(amount float64) ProposedOrder {
	return ProposedOrder{Decision: DecisionSell, Amount: amount}
}

// Validate validates the ProposedOrder struct.
func (o ProposedOrder) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid proposed order", err)
	}

	return nil
}

// Fill resolves the order as filled.
func (o ProposedOrder) Fill() ResolvedOrder {
	return ResolvedOrder{ProposedOrder: o, Status: OrderStatusFilled, Reason: ""}
}

// Reject resolves the order as rejected for the given reason.
func (o ProposedOrder) Reject(reason string) ResolvedOrder {
	return ResolvedOrder{ProposedOrder: o, Status: OrderStatusRejected, Reason: reason}
}

// IsFilled reports whether the order changed funds and balance.
func (o ResolvedOrder) IsFilled() bool {
	return o.Status == OrderStatusFilled
}
