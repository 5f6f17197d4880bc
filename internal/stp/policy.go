// Package stp implements self-trade prevention policies, grounded on
// original_source/cpp/include/policy/self_trade_prevention.hpp.
package stp

// Decision is the outcome of consulting a Policy on a detected self-trade:
// which side(s) of the prospective fill should be cancelled instead of
// matched.
type Decision struct {
	CancelIncoming bool
	CancelResting  bool
}

// Valid reports whether the decision makes progress. A decision that
// cancels neither side would spin the matching loop forever; spec.md §9
// forbids it outright.
func (d Decision) Valid() bool {
	return d.CancelIncoming || d.CancelResting
}

// Policy decides how to resolve a self-trade. The decision is stateless
// and does not depend on the two orders' identities — both are already
// known to share an OwnerID by the time a Policy is consulted.
type Policy interface {
	Decide() Decision
}

// CancelBoth cancels both the incoming and the resting order on a
// self-trade.
type CancelBoth struct{}

func (CancelBoth) Decide() Decision { return Decision{CancelIncoming: true, CancelResting: true} }

// CancelIncoming cancels only the incoming (taker) order, leaving the
// resting order in the book.
type CancelIncoming struct{}

func (CancelIncoming) Decide() Decision { return Decision{CancelIncoming: true} }

// CancelResting cancels only the resting (maker) order, letting the
// incoming order continue matching against the next resting order.
type CancelResting struct{}

func (CancelResting) Decide() Decision { return Decision{CancelResting: true} }
