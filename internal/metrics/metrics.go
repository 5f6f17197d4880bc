// Package metrics exposes ironbook's counters and histograms as
// Prometheus collectors. Grounded on the shape of the teacher's
// internal/metrics/metrics.go (orders received/matched/cancelled,
// trades executed, latency) translated from hand-rolled atomics and a
// MarshalJSON snapshot into github.com/prometheus/client_golang
// collectors, registered against a private registry so a server can
// run more than one ironbook instance in the same process.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ironbook"

// Metrics holds the Prometheus collectors exposed at the metrics endpoint.
// The API server updates OrdersReceived, OrdersRejected and MatchLatency;
// TradesExecuted, VolumeExecuted, CancelsProcessed and BookDepth change
// only when a caller uses ObserveFill, SetBookDepth or the fields directly,
// which the server does not do.
type Metrics struct {
	registry *prometheus.Registry

	OrdersReceived   prometheus.Counter
	OrdersRejected   *prometheus.CounterVec // labeled by rejection reason
	TradesExecuted   prometheus.Counter
	VolumeExecuted   prometheus.Counter
	CancelsProcessed prometheus.Counter
	BookDepth        *prometheus.GaugeVec // labeled by side: bid, ask
	MatchLatency     prometheus.Histogram
}

// New constructs a Metrics bound to a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		OrdersReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_received_total",
			Help:      "Total number of orders submitted to the engine.",
		}),
		OrdersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Total number of orders rejected, labeled by reason.",
		}, []string{"reason"}),
		TradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_executed_total",
			Help:      "Total number of trades recorded.",
		}),
		VolumeExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "volume_executed_total",
			Help:      "Total quantity traded across all fills.",
		}),
		CancelsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancels_processed_total",
			Help:      "Total number of successful cancellations, by user request or STP.",
		}),
		BookDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "book_depth",
			Help:      "Current resting order count, labeled by side.",
		}, []string{"side"}),
		MatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_latency_seconds",
			Help:      "Time to run one Engine.Match call.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12), // 1us .. ~4.2s
		}),
	}

	reg.MustRegister(
		m.OrdersReceived,
		m.OrdersRejected,
		m.TradesExecuted,
		m.VolumeExecuted,
		m.CancelsProcessed,
		m.BookDepth,
		m.MatchLatency,
	)
	return m
}

// Handler returns the HTTP handler the API server mounts at the
// configured metrics path.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRejection records a rejected order by its surfaced reason.
func (m *Metrics) ObserveRejection(reason string) {
	m.OrdersRejected.WithLabelValues(reason).Inc()
}

// ObserveFill records one executed fill's traded quantity.
func (m *Metrics) ObserveFill(qty int64) {
	m.TradesExecuted.Inc()
	m.VolumeExecuted.Add(float64(qty))
}

// SetBookDepth sets the current resting order count for one side.
func (m *Metrics) SetBookDepth(side string, count float64) {
	m.BookDepth.WithLabelValues(side).Set(count)
}
