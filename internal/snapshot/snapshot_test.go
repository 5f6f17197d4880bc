package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironbook/internal/book"
	"ironbook/internal/order"
	"ironbook/internal/snapshot"
)

func TestBuild_EmptyBook(t *testing.T) {
	b := book.New()
	s := snapshot.Build(b, 12345, 5)

	assert.Equal(t, uint64(12345), s.Timestamp)
	assert.Nil(t, s.BestBid)
	assert.Nil(t, s.BestAsk)
	assert.Nil(t, s.Spread)
	assert.Nil(t, s.Mid)
	assert.Empty(t, s.BidDepths)
	assert.Empty(t, s.AskDepths)
}

func TestBuild_SpreadAndMid(t *testing.T) {
	b := book.New()
	require.Equal(t, order.None, b.Add(order.NewLimitOrder(1, 1, 100, 10, order.Buy, 1000)))
	require.Equal(t, order.None, b.Add(order.NewLimitOrder(2, 1, 106, 10, order.Sell, 1001)))

	s := snapshot.Build(b, 1, 5)

	require.NotNil(t, s.BestBid)
	require.NotNil(t, s.BestAsk)
	assert.Equal(t, order.PriceTicks(100), *s.BestBid)
	assert.Equal(t, order.PriceTicks(106), *s.BestAsk)
	require.NotNil(t, s.Spread)
	assert.Equal(t, order.PriceTicks(6), *s.Spread)
	require.NotNil(t, s.Mid)
	assert.Equal(t, order.PriceTicks(103), *s.Mid)
}

func TestBuild_SideSummaryAggregatesAcrossLevels(t *testing.T) {
	b := book.New()
	require.Equal(t, order.None, b.Add(order.NewLimitOrder(1, 1, 100, 10, order.Buy, 1000)))
	require.Equal(t, order.None, b.Add(order.NewLimitOrder(2, 1, 100, 5, order.Buy, 1001)))
	require.Equal(t, order.None, b.Add(order.NewLimitOrder(3, 1, 99, 3, order.Buy, 1002)))

	s := snapshot.Build(b, 1, 5)

	assert.Equal(t, order.Quantity(18), s.BidSummary.TotalQuantity)
	assert.Equal(t, uint32(3), s.BidSummary.OrderCount)
	assert.Equal(t, int64(100*15+99*3), s.BidSummary.TotalNotional)
}

func TestBuild_DepthCappedAtLimit(t *testing.T) {
	b := book.New()
	for i := 0; i < 10; i++ {
		require.Equal(t, order.None, b.Add(order.NewLimitOrder(order.ID(i+1), 1, order.PriceTicks(100-i), 1, order.Buy, uint64(i))))
	}

	s := snapshot.Build(b, 1, 3)
	assert.Len(t, s.BidDepths, 3)
	assert.Equal(t, order.PriceTicks(100), s.BidDepths[0].Price, "depth rows are in priority order")
	assert.Equal(t, order.PriceTicks(99), s.BidDepths[1].Price)
	assert.Equal(t, order.PriceTicks(98), s.BidDepths[2].Price)

	assert.Equal(t, order.Quantity(10), s.BidSummary.TotalQuantity, "summary still aggregates every level, not just the depth window")
}

func TestBuild_NonPositiveDepthLimitFallsBackToDefault(t *testing.T) {
	b := book.New()
	for i := 0; i < 10; i++ {
		require.Equal(t, order.None, b.Add(order.NewLimitOrder(order.ID(i+1), 1, order.PriceTicks(100-i), 1, order.Buy, uint64(i))))
	}

	s := snapshot.Build(b, 1, 0)
	assert.Len(t, s.BidDepths, snapshot.DefaultDepthLimit)
}

func TestBuild_TempoCopiesCounters(t *testing.T) {
	b := book.New()
	b.RecordExecution(5)
	b.RecordCancellation()

	s := snapshot.Build(b, 1, 5)
	assert.Equal(t, uint64(1), s.Tempo.ExecutionCount)
	assert.Equal(t, uint64(1), s.Tempo.CancelCount)
	assert.Equal(t, uint64(5), s.Tempo.TotalVolumeExecuted)
}
