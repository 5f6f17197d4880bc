// Package lifecycle derives an order's next status from its quantity
// before and after some interaction, per spec.md §4.2. It is grounded on
// original_source/cpp/include/models/order_lifecycle.hpp (the model
// revision, which has the type-dispatching AfterMatching used here) and
// resolves the ambiguous fall-through in
// original_source/cpp/include/policy/order_lifecycle.hpp's
// AfterCancelResting per spec.md §9 open question 2: an order whose
// current status is already terminal is returned unchanged.
package lifecycle

import "ironbook/internal/order"

// AfterMatching derives the next status from (initial qty, remaining
// qty, type) per the table in spec.md §4.2.
func AfterMatching(initialQty, remainingQty order.Quantity, t order.Type) order.Status {
	if t == order.Cancel {
		return order.Executed
	}
	if remainingQty == 0 {
		return order.Executed
	}
	if remainingQty < initialQty {
		if t == order.Limit {
			return order.PartiallyExecuted
		}
		return order.CancelledAfterPartialExecution
	}
	if t == order.Limit {
		return order.Pending
	}
	return order.Cancelled
}

// AfterCancelIncoming derives the terminal status of an incoming order
// that is being cancelled by self-trade prevention.
func AfterCancelIncoming(initialQty, remainingQty order.Quantity) order.Status {
	if remainingQty < initialQty {
		return order.CancelledAfterPartialExecution
	}
	return order.Cancelled
}

// AfterCancelResting derives the terminal status of a resting order being
// removed from the book (by user cancel or by self-trade prevention).
// An order that is not currently Pending or PartiallyExecuted is already
// terminal and is returned unchanged — this never fires in a correctly
// driven engine, but guards against double-cancellation bugs rather than
// falling through to an undefined status.
func AfterCancelResting(current order.Status) order.Status {
	switch current {
	case order.Pending:
		return order.Cancelled
	case order.PartiallyExecuted:
		return order.CancelledAfterPartialExecution
	default:
		return current
	}
}
