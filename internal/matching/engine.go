// Package matching drives the per-event state machine from spec.md §4.5:
// validate, check duplicate id, run the match loop against the book,
// apply self-trade prevention, dispatch cancels, and rest any
// non-marketable remainder. Grounded on the teacher's
// internal/matching/engine.go (ProcessOrder/processLimitOrder/
// processMarketOrder/executeTrade) and restructured into the single
// Match entry point from
// original_source/cpp/include/models/matching_engine.hpp.
package matching

import (
	"ironbook/internal/book"
	"ironbook/internal/execution"
	"ironbook/internal/lifecycle"
	"ironbook/internal/order"
	"ironbook/internal/stp"
	"ironbook/internal/tradeid"
	"ironbook/internal/tradelog"
	"ironbook/internal/validation"
)

// Engine holds references to a book, an STP policy, and the optional
// trade-logging collaborators. Match serialises itself by holding the
// book's write lock for the whole state machine (spec.md §5), so callers
// may invoke Match concurrently from multiple goroutines without an
// external mutex.
type Engine struct {
	Book     *book.Book
	STP      stp.Policy
	Logger   tradelog.Logger   // optional; nil disables trade emission
	TradeIDs tradeid.Generator // optional; nil disables trade emission
}

// New constructs an Engine over an existing book and STP policy. Logger
// and idGen may be nil: matching still occurs, trades are simply not
// emitted (spec.md §4.5 "failure semantics").
func New(b *book.Book, policy stp.Policy, logger tradelog.Logger, idGen tradeid.Generator) *Engine {
	return &Engine{Book: b, STP: policy, Logger: logger, TradeIDs: idGen}
}

// Match runs the full state machine for one incoming order and returns
// the rejection reason, or order.None on success. The incoming order's
// Status is always set consistently with the outcome before Match returns.
func (e *Engine) Match(incoming *order.Order) order.RejectionReason {
	e.Book.Lock()
	defer e.Book.Unlock()

	if reason := validation.ValidateBeforeMatching(incoming); reason != order.None {
		if incoming != nil {
			incoming.Status = order.Cancelled
		}
		return reason
	}

	if e.Book.Exists(incoming.OrderID) {
		return order.OrderToBeAddedAlreadyExists
	}

	initialQty := incoming.Qty
	side := incoming.Side

	for e.Book.IsMarketable(incoming) {
		resting := e.Book.MatchedHead(side)
		restingInitialQty := resting.Qty

		if resting.OwnerID == incoming.OwnerID {
			decision := e.STP.Decide()
			if !decision.Valid() {
				panic("matching: STP policy decided to cancel neither side of a self-trade")
			}

			if decision.CancelIncoming {
				incoming.Status = lifecycle.AfterCancelIncoming(initialQty, incoming.Qty)
			}
			if decision.CancelResting {
				resting.Status = lifecycle.AfterCancelResting(resting.Status)
				e.Book.PopFront(side)
				e.Book.RecordCancellation()
			}

			if incoming.Status == order.Cancelled || incoming.Status == order.CancelledAfterPartialExecution {
				return order.None
			}
			if resting.Status == order.Cancelled || resting.Status == order.CancelledAfterPartialExecution {
				continue
			}
		}

		traded := execution.ExecuteTradeAndLog(incoming, resting, e.Logger, e.TradeIDs)
		e.Book.RecordExecution(traded)

		resting.Status = lifecycle.AfterMatching(restingInitialQty, resting.Qty, order.Limit)
		if resting.Qty == 0 {
			e.Book.PopFront(side)
		}
	}

	if incoming.Type == order.Cancel {
		reason := e.Book.Cancel(incoming.LinkedOrderID)
		if reason != order.None {
			incoming.Status = order.Cancelled
			return reason
		}
		e.Book.RecordCancellation()
	}

	final := lifecycle.AfterMatching(initialQty, incoming.Qty, incoming.Type)
	incoming.Status = final

	if final == order.Pending || final == order.PartiallyExecuted {
		if reason := e.Book.Add(incoming); reason != order.None {
			incoming.Status = lifecycle.AfterCancelResting(incoming.Status)
			return reason.AsEngineSurface()
		}
	}

	return order.None
}
