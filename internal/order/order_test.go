package order_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironbook/internal/order"
)

func TestSide_String(t *testing.T) {
	assert.Equal(t, "BUY", order.Buy.String())
	assert.Equal(t, "SELL", order.Sell.String())
	assert.Equal(t, "NONE", order.None.String())
	assert.Equal(t, "UNKNOWN", order.Side(99).String())
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "LIMIT", order.Limit.String())
	assert.Equal(t, "MARKET", order.Market.String())
	assert.Equal(t, "CANCEL", order.Cancel.String())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PENDING", order.Pending.String())
	assert.Equal(t, "PARTIALLY_EXECUTED", order.PartiallyExecuted.String())
	assert.Equal(t, "EXECUTED", order.Executed.String())
	assert.Equal(t, "CANCELLED", order.Cancelled.String())
	assert.Equal(t, "CANCELLED_AFTER_PARTIAL_EXECUTION", order.CancelledAfterPartialExecution.String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.PartiallyExecuted.IsTerminal())
	assert.True(t, order.Executed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.CancelledAfterPartialExecution.IsTerminal())
}

func TestRejectionReason_AsEngineSurface(t *testing.T) {
	publicReasons := []order.RejectionReason{
		order.None, order.NullOrder, order.InvalidOrderType, order.InvalidLimitOrder,
		order.InvalidMarketOrder, order.InvalidCancelOrder, order.OrderToBeAddedAlreadyExists,
		order.OrderToBeCancelledDoesNotExist, order.OrderBookInvariantViolation,
	}
	for _, r := range publicReasons {
		assert.Equal(t, r, r.AsEngineSurface(), "public reason %s must pass through unchanged", r)
	}

	bookInternalReasons := []order.RejectionReason{
		order.InvalidQuantity, order.InvalidPrice, order.AddingMarketOrder,
		order.AddingCancelOrder, order.AddingDuplicateOrder, order.AddingCancelledOrder,
		order.AddingExecutedOrder,
	}
	for _, r := range bookInternalReasons {
		assert.Equal(t, order.OrderBookInvariantViolation, r.AsEngineSurface(), "book-internal reason %s must collapse", r)
	}
}

func TestRejectionReason_Error(t *testing.T) {
	assert.Equal(t, "rejected: InvalidLimitOrder", order.InvalidLimitOrder.Error())
}

func TestSide_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(order.Buy)
	require.NoError(t, err)
	assert.Equal(t, `"BUY"`, string(b))
}

func TestNewLimitOrder(t *testing.T) {
	o := order.NewLimitOrder(1, 10, 100, 5, order.Buy, 1000)
	assert.Equal(t, order.ID(1), o.OrderID)
	assert.Equal(t, order.OwnerID(10), o.OwnerID)
	assert.Equal(t, order.PriceTicks(100), o.PriceTicks)
	assert.Equal(t, order.Quantity(5), o.Qty)
	assert.Equal(t, order.Buy, o.Side)
	assert.Equal(t, order.Limit, o.Type)
	assert.Equal(t, order.Pending, o.Status)
	assert.True(t, o.IsResting())
}

func TestNewMarketOrder_PriceAlwaysZero(t *testing.T) {
	o := order.NewMarketOrder(2, 10, 5, order.Sell, 1000)
	assert.Equal(t, order.PriceTicks(0), o.PriceTicks)
	assert.Equal(t, order.Market, o.Type)
	assert.True(t, o.IsResting())
}

func TestNewCancelOrder_CarriesLinkedID(t *testing.T) {
	o := order.NewCancelOrder(3, 10, 1, 1000)
	assert.Equal(t, order.ID(1), o.LinkedOrderID)
	assert.Equal(t, order.None, o.Side)
	assert.Equal(t, order.Cancel, o.Type)
	assert.True(t, o.IsResting(), "IsResting looks only at status, and a new cancel order is Pending")
}

func TestOrder_IsResting_FalseOnceTerminal(t *testing.T) {
	o := order.NewLimitOrder(1, 10, 100, 5, order.Buy, 1000)
	o.Status = order.Executed
	assert.False(t, o.IsResting())
}

func TestOrder_String_ContainsKeyFields(t *testing.T) {
	o := order.NewLimitOrder(7, 10, 100, 5, order.Buy, 1000)
	s := o.String()
	assert.Contains(t, s, "id=7")
	assert.Contains(t, s, "side=BUY")
	assert.Contains(t, s, "type=LIMIT")
	assert.Contains(t, s, "status=PENDING")
}

func TestTrade_String_ContainsKeyFields(t *testing.T) {
	tr := &order.Trade{
		TradeID: 1, TakerOrderID: 2, MakerOrderID: 3,
		PriceTicks: 100, Qty: 5, Side: order.Buy, Timestamp: 1000,
	}
	s := tr.String()
	assert.Contains(t, s, "id=1")
	assert.Contains(t, s, "taker=2")
	assert.Contains(t, s, "maker=3")
	assert.Contains(t, s, "side=BUY")
}
