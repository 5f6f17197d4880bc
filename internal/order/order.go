package order

import "fmt"

// ID is a nonzero 32-bit order identifier.
type ID uint32

// OwnerID identifies the party that submitted an order; self-trade
// prevention compares two orders' OwnerID to detect a self-trade.
type OwnerID uint32

// PriceTicks is a signed price expressed as an integer multiple of the
// smallest quotable increment (a tick).
type PriceTicks int32

// Quantity is a signed residual order size. It only ever decreases once
// an order is live, and must never go negative.
type Quantity int32

// Order is the mutable unit of book state. Identity (ID, OwnerID, Side,
// Type, PriceTicks, Timestamp, LinkedOrderID) is fixed at construction;
// Qty and Status mutate as the order is matched, rests, or is cancelled.
type Order struct {
	OrderID       ID
	OwnerID       OwnerID
	PriceTicks    PriceTicks
	Qty           Quantity
	Side          Side
	Type          Type
	Timestamp     uint64
	Status        Status
	LinkedOrderID ID
}

// NewLimitOrder constructs a resting-eligible limit order in Pending status.
func NewLimitOrder(id ID, owner OwnerID, price PriceTicks, qty Quantity, side Side, ts uint64) *Order {
	return &Order{
		OrderID:    id,
		OwnerID:    owner,
		PriceTicks: price,
		Qty:        qty,
		Side:       side,
		Type:       Limit,
		Timestamp:  ts,
		Status:     Pending,
	}
}

// NewMarketOrder constructs a market order in Pending status. PriceTicks
// is always zero; market orders never rest.
func NewMarketOrder(id ID, owner OwnerID, qty Quantity, side Side, ts uint64) *Order {
	return &Order{
		OrderID:   id,
		OwnerID:   owner,
		Qty:       qty,
		Side:      side,
		Type:      Market,
		Timestamp: ts,
		Status:    Pending,
	}
}

// NewCancelOrder constructs a cancel request targeting linkedOrderID.
func NewCancelOrder(id ID, owner OwnerID, linkedOrderID ID, ts uint64) *Order {
	return &Order{
		OrderID:       id,
		OwnerID:       owner,
		Side:          None,
		Type:          Cancel,
		Timestamp:     ts,
		Status:        Pending,
		LinkedOrderID: linkedOrderID,
	}
}

// InitialQty and tracking fill progress is the caller's job: the book and
// engine only ever see the residual Qty, so "initial quantity" is
// snapshotted by the matching engine at the start of a Match call.

func (o *Order) String() string {
	return fmt.Sprintf("Order[id=%d owner=%d side=%s type=%s price=%d qty=%d status=%s ts=%d link=%d]",
		o.OrderID, o.OwnerID, o.Side, o.Type, o.PriceTicks, o.Qty, o.Status, o.Timestamp, o.LinkedOrderID)
}

// IsResting reports whether the order's status means it belongs in the book.
func (o *Order) IsResting() bool {
	return o.Status == Pending || o.Status == PartiallyExecuted
}
