package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironbook/internal/metrics"
)

func TestHandler_ExposesRegisteredCollectors(t *testing.T) {
	m := metrics.New()
	m.OrdersReceived.Inc()
	m.ObserveRejection("InvalidLimitOrder")
	m.ObserveFill(10)
	m.SetBookDepth("bid", 3)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ironbook_orders_received_total 1")
	assert.Contains(t, body, `ironbook_orders_rejected_total{reason="InvalidLimitOrder"} 1`)
	assert.Contains(t, body, "ironbook_trades_executed_total 1")
	assert.Contains(t, body, "ironbook_volume_executed_total 10")
	assert.Contains(t, body, `ironbook_book_depth{side="bid"} 3`)
}

func TestNew_DistinctRegistriesDoNotCollide(t *testing.T) {
	m1 := metrics.New()
	m2 := metrics.New()
	m1.OrdersReceived.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m2.Handler().ServeHTTP(rec, req)

	assert.NotContains(t, rec.Body.String(), "ironbook_orders_received_total 1")
}
