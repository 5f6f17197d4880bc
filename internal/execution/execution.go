// Package execution implements the thin fill combinator from
// spec.md §4.6, grounded on
// original_source/cpp/include/models/execution_engine.hpp's two-overload
// executeTrade: one pure quantity-math version, and one that additionally
// emits a Trade when a logger and id generator are both present.
package execution

import (
	"ironbook/internal/order"
	"ironbook/internal/tradeid"
	"ironbook/internal/tradelog"
)

// ExecuteTrade computes the traded quantity (min of both residuals) and
// decrements both orders by it. It never emits a Trade record.
func ExecuteTrade(taker, maker *order.Order) order.Quantity {
	traded := taker.Qty
	if maker.Qty < traded {
		traded = maker.Qty
	}
	taker.Qty -= traded
	maker.Qty -= traded
	return traded
}

// ExecuteTradeAndLog performs the same quantity math as ExecuteTrade and,
// when traded > 0 and both logger and idGen are non-nil, allocates a
// trade id, builds a Trade (price = maker's price, side = taker's side,
// timestamp = taker's timestamp), and appends it to the logger.
func ExecuteTradeAndLog(taker, maker *order.Order, logger tradelog.Logger, idGen tradeid.Generator) order.Quantity {
	traded := ExecuteTrade(taker, maker)
	if traded == 0 || logger == nil || idGen == nil {
		return traded
	}
	trade := &order.Trade{
		TradeID:      order.TradeID(idGen.NextID()),
		TakerOrderID: taker.OrderID,
		MakerOrderID: maker.OrderID,
		PriceTicks:   maker.PriceTicks,
		Qty:          traded,
		Side:         taker.Side,
		Timestamp:    taker.Timestamp,
	}
	logger.Log(trade)
	return traded
}
