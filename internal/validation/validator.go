// Package validation implements the pure, side-effect-free order
// classification rules from spec.md §4.1, grounded on
// original_source/cpp/include/policy/order_validation.hpp.
package validation

import "ironbook/internal/order"

// ValidateLimit checks a resting-side limit order. When allowPartial is
// true, PartiallyExecuted is accepted alongside Pending — used by
// ValidateBeforeAdding, which must admit orders that rest after a sweep.
func ValidateLimit(o *order.Order, allowPartial bool) order.RejectionReason {
	if o.PriceTicks <= 0 {
		return order.InvalidLimitOrder
	}
	if o.Qty <= 0 {
		return order.InvalidLimitOrder
	}
	if o.Side != order.Buy && o.Side != order.Sell {
		return order.InvalidLimitOrder
	}
	if o.Status != order.Pending && !(allowPartial && o.Status == order.PartiallyExecuted) {
		return order.InvalidLimitOrder
	}
	if o.OrderID == 0 {
		return order.InvalidLimitOrder
	}
	if o.LinkedOrderID != 0 {
		return order.InvalidLimitOrder
	}
	return order.None
}

// ValidateMarket checks an incoming market order.
func ValidateMarket(o *order.Order) order.RejectionReason {
	if o.PriceTicks != 0 {
		return order.InvalidMarketOrder
	}
	if o.Qty <= 0 {
		return order.InvalidMarketOrder
	}
	if o.Side != order.Buy && o.Side != order.Sell {
		return order.InvalidMarketOrder
	}
	if o.Status != order.Pending {
		return order.InvalidMarketOrder
	}
	if o.OrderID == 0 {
		return order.InvalidMarketOrder
	}
	if o.LinkedOrderID != 0 {
		return order.InvalidMarketOrder
	}
	return order.None
}

// ValidateCancel checks an incoming cancel request.
func ValidateCancel(o *order.Order) order.RejectionReason {
	if o.PriceTicks != 0 {
		return order.InvalidCancelOrder
	}
	if o.Qty != 0 {
		return order.InvalidCancelOrder
	}
	if o.Side != order.None {
		return order.InvalidCancelOrder
	}
	if o.Status != order.Pending {
		return order.InvalidCancelOrder
	}
	if o.OrderID == 0 {
		return order.InvalidCancelOrder
	}
	if o.LinkedOrderID == 0 || o.LinkedOrderID == o.OrderID {
		return order.InvalidCancelOrder
	}
	return order.None
}

// ValidateBeforeMatching dispatches by order type before the matching
// engine touches the book at all.
func ValidateBeforeMatching(o *order.Order) order.RejectionReason {
	if o == nil {
		return order.NullOrder
	}
	switch o.Type {
	case order.Limit:
		return ValidateLimit(o, false)
	case order.Market:
		return ValidateMarket(o)
	case order.Cancel:
		return ValidateCancel(o)
	default:
		return order.InvalidOrderType
	}
}

// ValidateBeforeAdding validates an order immediately before it rests in
// the book. Resting orders must look like a valid limit order that may
// already carry partial fills, and must never be a market or cancel type
// or already-terminal order.
func ValidateBeforeAdding(o *order.Order) order.RejectionReason {
	if o == nil {
		return order.NullOrder
	}
	if o.Type == order.Market {
		return order.AddingMarketOrder
	}
	if o.Type == order.Cancel {
		return order.AddingCancelOrder
	}
	if o.Qty <= 0 {
		return order.InvalidQuantity
	}
	if o.PriceTicks <= 0 {
		return order.InvalidPrice
	}
	if o.Status == order.Cancelled || o.Status == order.CancelledAfterPartialExecution {
		return order.AddingCancelledOrder
	}
	if o.Status == order.Executed {
		return order.AddingExecutedOrder
	}
	if reason := ValidateLimit(o, true); reason != order.None {
		return order.OrderBookInvariantViolation
	}
	return order.None
}

// ValidateBeforeCancelling validates a resting order retrieved by id
// immediately before the book removes it: it must still look like a
// valid, still-open limit order.
func ValidateBeforeCancelling(o *order.Order) order.RejectionReason {
	if o == nil {
		return order.NullOrder
	}
	if o.Status == order.Cancelled || o.Status == order.CancelledAfterPartialExecution || o.Status == order.Executed {
		return order.OrderBookInvariantViolation
	}
	if reason := ValidateLimit(o, true); reason != order.None {
		return order.OrderBookInvariantViolation
	}
	return order.None
}
