package execution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironbook/internal/execution"
	"ironbook/internal/order"
)

type fakeLogger struct {
	trades []*order.Trade
}

func (f *fakeLogger) Log(t *order.Trade) { f.trades = append(f.trades, t) }
func (f *fakeLogger) Flush() error       { return nil }
func (f *fakeLogger) Close() error       { return nil }

type fakeIDGen struct{ next uint64 }

func (g *fakeIDGen) NextID() uint64 {
	id := g.next
	g.next++
	return id
}

func TestExecuteTrade_TradesMinOfBothResiduals(t *testing.T) {
	taker := order.NewMarketOrder(1, 1, 10, order.Buy, 1000)
	maker := order.NewLimitOrder(2, 2, 100, 4, order.Sell, 999)

	traded := execution.ExecuteTrade(taker, maker)

	assert.Equal(t, order.Quantity(4), traded)
	assert.Equal(t, order.Quantity(6), taker.Qty)
	assert.Equal(t, order.Quantity(0), maker.Qty)
}

func TestExecuteTrade_TakerExhaustedFirst(t *testing.T) {
	taker := order.NewLimitOrder(1, 1, 100, 3, order.Buy, 1000)
	maker := order.NewLimitOrder(2, 2, 100, 10, order.Sell, 999)

	traded := execution.ExecuteTrade(taker, maker)

	assert.Equal(t, order.Quantity(3), traded)
	assert.Equal(t, order.Quantity(0), taker.Qty)
	assert.Equal(t, order.Quantity(7), maker.Qty)
}

func TestExecuteTradeAndLog_EmitsTradeAtMakerPrice(t *testing.T) {
	taker := order.NewMarketOrder(1, 1, 5, order.Buy, 1000)
	maker := order.NewLimitOrder(2, 2, 105, 5, order.Sell, 999)
	logger := &fakeLogger{}
	ids := &fakeIDGen{next: 7}

	traded := execution.ExecuteTradeAndLog(taker, maker, logger, ids)

	require.Equal(t, order.Quantity(5), traded)
	require.Len(t, logger.trades, 1)
	trade := logger.trades[0]
	assert.Equal(t, order.TradeID(7), trade.TradeID)
	assert.Equal(t, order.ID(1), trade.TakerOrderID)
	assert.Equal(t, order.ID(2), trade.MakerOrderID)
	assert.Equal(t, order.PriceTicks(105), trade.PriceTicks, "trade prints at the resting maker's price")
	assert.Equal(t, order.Buy, trade.Side, "trade side mirrors the taker's side")
	assert.Equal(t, uint64(1000), trade.Timestamp)
}

func TestExecuteTradeAndLog_NoLogWhenNothingTraded(t *testing.T) {
	taker := order.NewLimitOrder(1, 1, 100, 0, order.Buy, 1000)
	maker := order.NewLimitOrder(2, 2, 100, 5, order.Sell, 999)
	logger := &fakeLogger{}
	ids := &fakeIDGen{}

	traded := execution.ExecuteTradeAndLog(taker, maker, logger, ids)

	assert.Equal(t, order.Quantity(0), traded)
	assert.Empty(t, logger.trades)
}

func TestExecuteTradeAndLog_NilCollaboratorsSkipEmission(t *testing.T) {
	taker := order.NewMarketOrder(1, 1, 5, order.Buy, 1000)
	maker := order.NewLimitOrder(2, 2, 100, 5, order.Sell, 999)

	traded := execution.ExecuteTradeAndLog(taker, maker, nil, nil)

	assert.Equal(t, order.Quantity(5), traded)
	assert.Equal(t, order.Quantity(0), taker.Qty)
	assert.Equal(t, order.Quantity(0), maker.Qty)
}
