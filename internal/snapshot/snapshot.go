// Package snapshot builds the read-only market-structure view from
// spec.md §4.7/§6, grounded on
// original_source/cpp/include/models/market_structure_snapshot.hpp.
package snapshot

import (
	"container/list"

	"ironbook/internal/order"
)

// LevelInfo describes one aggregated price level.
type LevelInfo struct {
	Price         order.PriceTicks `json:"price"`
	TotalQuantity order.Quantity   `json:"total_quantity"`
	OrderCount    uint32           `json:"order_count"`
}

// SideSummary aggregates an entire side of the book.
type SideSummary struct {
	TotalQuantity order.Quantity `json:"total_quantity"`
	OrderCount    uint32         `json:"order_count"`
	TotalNotional int64          `json:"total_notional"`
}

// Tempo copies the book's monotonic counters verbatim.
type Tempo struct {
	ExecutionCount      uint64 `json:"execution_count"`
	CancelCount         uint64 `json:"cancel_count"`
	TotalVolumeExecuted uint64 `json:"total_volume_executed"`
}

// Snapshot is the read-only view materialised by Build.
type Snapshot struct {
	Timestamp  uint64             `json:"timestamp"`
	BestBid    *order.PriceTicks  `json:"best_bid"`
	BestAsk    *order.PriceTicks  `json:"best_ask"`
	Spread     *order.PriceTicks  `json:"spread"`
	Mid        *order.PriceTicks  `json:"mid"`
	BidSummary SideSummary        `json:"bid_summary"`
	AskSummary SideSummary        `json:"ask_summary"`
	BidDepths  []LevelInfo        `json:"bid_depths"`
	AskDepths  []LevelInfo        `json:"ask_depths"`
	Tempo      Tempo              `json:"tempo"`
}

// Source is the subset of book.Book's surface the snapshot builder reads.
// Declared here (rather than imported from package book) to keep the
// builder decoupled from the book's internal tree/locator representation;
// book.Book satisfies it directly.
type Source interface {
	BestBid() (order.PriceTicks, bool)
	BestAsk() (order.PriceTicks, bool)
	Counters() (executionCount, cancelCount, totalVolumeExecuted uint64)
	Levels(side order.Side, fn func(price order.PriceTicks, queue *list.List))
}

// DefaultDepthLimit is used when a caller asks for depth_limit <= 0.
const DefaultDepthLimit = 5

// Build walks both sides of the book in priority order and aggregates a
// Snapshot. Depth arrays are capped at depthLimit (DefaultDepthLimit if
// <= 0) and are in priority order.
func Build(b Source, now uint64, depthLimit int) Snapshot {
	if depthLimit <= 0 {
		depthLimit = DefaultDepthLimit
	}

	s := Snapshot{Timestamp: now}

	s.BidSummary, s.BidDepths = summarizeSide(b, order.Buy, depthLimit)
	s.AskSummary, s.AskDepths = summarizeSide(b, order.Sell, depthLimit)

	if bid, ok := b.BestBid(); ok {
		v := bid
		s.BestBid = &v
	}
	if ask, ok := b.BestAsk(); ok {
		v := ask
		s.BestAsk = &v
	}
	if s.BestBid != nil && s.BestAsk != nil {
		spread := *s.BestAsk - *s.BestBid
		s.Spread = &spread
		mid := (*s.BestBid + *s.BestAsk) / 2
		s.Mid = &mid
	}

	execCount, cancelCount, totalVolume := b.Counters()
	s.Tempo = Tempo{
		ExecutionCount:      execCount,
		CancelCount:         cancelCount,
		TotalVolumeExecuted: totalVolume,
	}

	return s
}

func summarizeSide(b Source, side order.Side, depthLimit int) (SideSummary, []LevelInfo) {
	var summary SideSummary
	depths := make([]LevelInfo, 0, depthLimit)

	b.Levels(side, func(price order.PriceTicks, queue *list.List) {
		var levelQty order.Quantity
		var levelCount uint32
		for e := queue.Front(); e != nil; e = e.Next() {
			o := e.Value.(*order.Order)
			levelQty += o.Qty
			levelCount++
		}

		summary.TotalQuantity += levelQty
		summary.OrderCount += levelCount
		summary.TotalNotional += int64(price) * int64(levelQty)

		if len(depths) < depthLimit {
			depths = append(depths, LevelInfo{
				Price:         price,
				TotalQuantity: levelQty,
				OrderCount:    levelCount,
			})
		}
	})

	return summary, depths
}
