package order

import "fmt"

// TradeID is a process-wide monotonically increasing trade identifier,
// allocated by tradeid.Generator.
type TradeID uint64

// Trade is an executed fill record. Price is always the resting (maker)
// order's price; Side is the taker's side; Timestamp is the taker's
// arrival timestamp.
type Trade struct {
	TradeID      TradeID
	TakerOrderID ID
	MakerOrderID ID
	PriceTicks   PriceTicks
	Qty          Quantity
	Side         Side
	Timestamp    uint64
}

func (t *Trade) String() string {
	return fmt.Sprintf("Trade[id=%d taker=%d maker=%d price=%d qty=%d side=%s ts=%d]",
		t.TradeID, t.TakerOrderID, t.MakerOrderID, t.PriceTicks, t.Qty, t.Side, t.Timestamp)
}
