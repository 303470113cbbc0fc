package types

import (
	"testing"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestProposedOrderValidate(t *testing.T) {
	tests := []struct {
		name        string
		order       ProposedOrder
		shouldError bool
	}{
		{
			name:        "valid buy",
			order:       Buy(0.5),
			shouldError: false,
		},
		{
			name:        "valid sell",
			order:       Sell(2),
			shouldError: false,
		},
		{
			name:        "zero amount is allowed",
			order:       Buy(0),
			shouldError: false,
		},
		{
			name:        "negative amount",
			order:       Sell(-1),
			shouldError: true,
		},
		{
			name:        "missing decision",
			order:       ProposedOrder{Decision: "", Amount: 1},
			shouldError: true,
		},
		{
			name:        "unknown decision",
			order:       ProposedOrder{Decision: "HOLD", Amount: 1},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.shouldError {
				assert.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidOrder))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProposedOrderResolution(t *testing.T) {
	proposed := Buy(1.5)

	filled := proposed.Fill()
	assert.Equal(t, OrderStatusFilled, filled.Status)
	assert.Empty(t, filled.Reason)
	assert.True(t, filled.IsFilled())
	assert.Equal(t, proposed, filled.ProposedOrder)

	rejected := proposed.Reject(OrderReasonInsufficientFunds)
	assert.Equal(t, OrderStatusRejected, rejected.Status)
	assert.Equal(t, OrderReasonInsufficientFunds, rejected.Reason)
	assert.False(t, rejected.IsFilled())

	// resolving never touches the proposal
	assert.Equal(t, DecisionBuy, proposed.Decision)
	assert.Equal(t, 1.5, proposed.Amount)
}
