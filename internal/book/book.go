// Package book implements the double-sided price-level order book from
// spec.md §4.4: two price-indexed FIFO queues plus an id→locator index
// for O(1) amortised enqueue/dequeue and O(1) cancel-by-id.
//
// Grounded on the teacher's internal/matching/engine.go OrderBook (the
// emirpasic/gods red-black trees keyed by price, reversed for bids) and
// on original_source/cpp/include/models/order_book.hpp for the FIFO +
// locator design (a std::list per level plus an unordered_map from order
// id to a stable list iterator) — reproduced here with container/list
// and a map from order.ID to *list.Element.
package book

import (
	"container/list"
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	"ironbook/internal/lifecycle"
	"ironbook/internal/order"
	"ironbook/internal/snapshot"
	"ironbook/internal/validation"
)

func bidComparator(a, b interface{}) int {
	return utils.Int64Comparator(b, a)
}

func askComparator(a, b interface{}) int {
	return utils.Int64Comparator(a, b)
}

type locatorEntry struct {
	side  order.Side
	price int64
	elem  *list.Element
}

// Book is the live order book for one instrument. Per spec.md §5, all
// mutating operations are serialised; matching.Engine guards a whole
// Match call with Lock/Unlock, and Snapshot takes RLock internally so it
// is safe to call concurrently with an in-flight Match.
type Book struct {
	mu      sync.RWMutex
	bids    *redblacktree.Tree // int64 price -> *list.List of *order.Order
	asks    *redblacktree.Tree
	locator map[order.ID]locatorEntry

	executionCount      uint64
	cancelCount         uint64
	totalVolumeExecuted uint64
}

// Lock acquires exclusive access. A caller driving a full Match (or any
// other multi-step mutation spanning several Book calls) must hold this
// for the whole operation, mirroring the teacher's OrderBook.Lock/Unlock.
func (b *Book) Lock() { b.mu.Lock() }

// Unlock releases exclusive access acquired by Lock.
func (b *Book) Unlock() { b.mu.Unlock() }

// New constructs an empty book.
func New() *Book {
	return &Book{
		bids:    redblacktree.NewWith(bidComparator),
		asks:    redblacktree.NewWith(askComparator),
		locator: make(map[order.ID]locatorEntry),
	}
}

func (b *Book) treeFor(side order.Side) *redblacktree.Tree {
	if side == order.Buy {
		return b.bids
	}
	return b.asks
}

// opposite returns the tree an incoming order of the given side matches
// against: a buy matches asks, a sell matches bids.
func (b *Book) opposite(side order.Side) *redblacktree.Tree {
	if side == order.Buy {
		return b.asks
	}
	return b.bids
}

// Add validates and inserts a resting order, appending it to the tail of
// its price level's FIFO queue (creating the level if absent).
func (b *Book) Add(o *order.Order) order.RejectionReason {
	if reason := validation.ValidateBeforeAdding(o); reason != order.None {
		return reason
	}
	if _, exists := b.locator[o.OrderID]; exists {
		return order.AddingDuplicateOrder
	}

	tree := b.treeFor(o.Side)
	price := int64(o.PriceTicks)

	var queue *list.List
	if v, found := tree.Get(price); found {
		queue = v.(*list.List)
	} else {
		queue = list.New()
		tree.Put(price, queue)
	}
	elem := queue.PushBack(o)
	b.locator[o.OrderID] = locatorEntry{side: o.Side, price: price, elem: elem}
	return order.None
}

// Cancel removes a resting order by id, deleting its price level if it
// becomes empty, and sets the order's terminal status.
func (b *Book) Cancel(id order.ID) order.RejectionReason {
	loc, exists := b.locator[id]
	if !exists {
		return order.OrderToBeCancelledDoesNotExist
	}
	o := loc.elem.Value.(*order.Order)
	if reason := validation.ValidateBeforeCancelling(o); reason != order.None {
		return reason
	}

	tree := b.treeFor(loc.side)
	v, found := tree.Get(loc.price)
	if !found {
		return order.OrderBookInvariantViolation
	}
	queue := v.(*list.List)
	queue.Remove(loc.elem)
	if queue.Len() == 0 {
		tree.Remove(loc.price)
	}
	delete(b.locator, id)

	o.Status = lifecycle.AfterCancelResting(o.Status)
	return order.None
}

// BestBid returns the best (highest) bid price, if any.
func (b *Book) BestBid() (order.PriceTicks, bool) {
	if b.bids.Empty() {
		return 0, false
	}
	return order.PriceTicks(b.bids.Left().Key.(int64)), true
}

// BestAsk returns the best (lowest) ask price, if any.
func (b *Book) BestAsk() (order.PriceTicks, bool) {
	if b.asks.Empty() {
		return 0, false
	}
	return order.PriceTicks(b.asks.Left().Key.(int64)), true
}

// Exists reports whether an order id is currently resting in the book.
func (b *Book) Exists(id order.ID) bool {
	_, ok := b.locator[id]
	return ok
}

// IsMarketable reports whether the order can trade at least one unit
// immediately against the current book.
func (b *Book) IsMarketable(o *order.Order) bool {
	if o.Type == order.Cancel || o.Qty == 0 {
		return false
	}
	opp := b.opposite(o.Side)
	if opp.Empty() {
		return false
	}
	if o.Type == order.Market {
		return true
	}
	if o.Side == order.Buy {
		bestAsk, _ := b.BestAsk()
		return o.PriceTicks >= bestAsk
	}
	bestBid, _ := b.BestBid()
	return o.PriceTicks <= bestBid
}

// MatchedHead returns the head of the opposite side's best level for an
// incoming order of the given side — the order it would trade against
// next — or nil if the opposite side is empty.
func (b *Book) MatchedHead(incomingSide order.Side) *order.Order {
	opp := b.opposite(incomingSide)
	if opp.Empty() {
		return nil
	}
	node := opp.Left()
	queue := node.Value.(*list.List)
	if queue.Len() == 0 {
		return nil
	}
	return queue.Front().Value.(*order.Order)
}

// PopFront removes the head of the opposite side's best level (the order
// last returned by MatchedHead) and its locator entry, erasing the level
// if it becomes empty.
func (b *Book) PopFront(incomingSide order.Side) {
	opp := b.opposite(incomingSide)
	if opp.Empty() {
		return
	}
	node := opp.Left()
	queue := node.Value.(*list.List)
	if queue.Len() == 0 {
		return
	}
	front := queue.Front()
	head := front.Value.(*order.Order)
	delete(b.locator, head.OrderID)
	queue.Remove(front)
	if queue.Len() == 0 {
		opp.Remove(node.Key)
	}
}

// RecordExecution folds a completed fill into the book's counters.
func (b *Book) RecordExecution(qty order.Quantity) {
	if qty > 0 {
		b.executionCount++
		b.totalVolumeExecuted += uint64(qty)
	}
}

// RecordCancellation increments the cancel counter. Per spec.md §9's
// open question (resolved in SPEC_FULL.md §7), this is called both for a
// successful user Cancel-order dispatch and for an STP cancel-resting.
func (b *Book) RecordCancellation() {
	b.cancelCount++
}

// Counters exposes the raw monotonic counters for snapshot building.
func (b *Book) Counters() (executionCount, cancelCount, totalVolumeExecuted uint64) {
	return b.executionCount, b.cancelCount, b.totalVolumeExecuted
}

// Levels walks one side of the book in priority order, invoking fn with
// the price and its FIFO queue. Used by the snapshot builder.
func (b *Book) Levels(side order.Side, fn func(price order.PriceTicks, queue *list.List)) {
	tree := b.treeFor(side)
	it := tree.Iterator()
	for it.Next() {
		fn(order.PriceTicks(it.Key().(int64)), it.Value().(*list.List))
	}
}

// Snapshot materialises a read-only market-structure view of the book.
// It takes a read lock so it may run concurrently with other readers but
// never overlaps a writer holding Lock (spec.md §5's read/write-lock
// option for snapshot reads).
func (b *Book) Snapshot(now uint64, depthLimit int) snapshot.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return snapshot.Build(b, now, depthLimit)
}
