// Package api exposes the matching engine over HTTP. Route layout and
// the writeJSON helper are adapted from the teacher's
// internal/api/server.go, generalized from teacher's string symbol/order
// ids to ironbook's integer order.ID/order.OwnerID, with zerolog request
// logging and google/uuid trace ids following saiputravu-Exchange's
// logging style and the teacher's own use of uuid for order identity.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ironbook/internal/matching"
	"ironbook/internal/metrics"
	"ironbook/internal/order"
)

// CreateOrderRequest is the POST /api/v1/orders body. Price is required
// for limit orders; for market orders any price sent is ignored.
type CreateOrderRequest struct {
	OrderID    order.ID      `json:"order_id"`
	OwnerID    order.OwnerID `json:"owner_id"`
	Side       string        `json:"side"` // "buy" or "sell"
	Type       string        `json:"type"` // "limit" or "market"
	PriceTicks int32         `json:"price_ticks,omitempty"`
	Quantity   int32         `json:"quantity"`
}

type CreateOrderResponse struct {
	OrderID           order.ID `json:"order_id"`
	Status            string   `json:"status"`
	RemainingQuantity int32    `json:"remaining_quantity"`
	Error             string   `json:"error,omitempty"`
}

type CancelOrderRequest struct {
	OrderID       order.ID      `json:"order_id"`
	OwnerID       order.OwnerID `json:"owner_id"`
	LinkedOrderID order.ID      `json:"linked_order_id"`
}

type CancelOrderResponse struct {
	OrderID order.ID `json:"order_id"`
	Status  string   `json:"status"`
	Error   string   `json:"error,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Server is the HTTP API for a single ironbook instance.
type Server struct {
	addr      string
	engine    *matching.Engine
	metrics   *metrics.Metrics
	metricsAt string
	log       zerolog.Logger
	startTime time.Time
	nowFn     func() uint64
	http      *http.Server
}

// New constructs a Server. nowFn supplies the timestamp attached to
// every incoming order; callers typically pass a monotonic clock.
func New(addr string, eng *matching.Engine, m *metrics.Metrics, metricsPath string, logger zerolog.Logger, nowFn func() uint64) *Server {
	s := &Server{
		addr:      addr,
		engine:    eng,
		metrics:   m,
		metricsAt: metricsPath,
		log:       logger,
		startTime: time.Now(),
		nowFn:     nowFn,
	}
	s.http = &http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

// Handler builds the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/orders", s.withLogging(s.handleCreateOrder))
	mux.HandleFunc("POST /api/v1/orders/cancel", s.withLogging(s.handleCancelOrder))
	mux.HandleFunc("GET /api/v1/book", s.withLogging(s.handleGetBook))
	mux.HandleFunc("GET /health", s.withLogging(s.handleHealth))
	if s.metrics != nil {
		mux.Handle(s.metricsAt, s.metrics.Handler())
	}
	return mux
}

// Run starts the HTTP server and blocks until it exits or Shutdown is
// called.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.addr).Msg("api server starting")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// to finish or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.New().String()
		start := time.Now()
		next(w, r)
		s.log.Info().
			Str("trace_id", traceID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	side, ok := parseSide(req.Side)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "side must be buy or sell"})
		return
	}

	var o *order.Order
	switch req.Type {
	case "limit":
		o = order.NewLimitOrder(req.OrderID, req.OwnerID, order.PriceTicks(req.PriceTicks), order.Quantity(req.Quantity), side, s.nowFn())
	case "market":
		o = order.NewMarketOrder(req.OrderID, req.OwnerID, order.Quantity(req.Quantity), side, s.nowFn())
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be limit or market"})
		return
	}

	if s.metrics != nil {
		s.metrics.OrdersReceived.Inc()
	}

	start := time.Now()
	reason := s.engine.Match(o)
	if s.metrics != nil {
		s.metrics.MatchLatency.Observe(time.Since(start).Seconds())
	}

	resp := CreateOrderResponse{
		OrderID:           o.OrderID,
		Status:            o.Status.String(),
		RemainingQuantity: int32(o.Qty),
	}

	if reason != order.None {
		if s.metrics != nil {
			s.metrics.ObserveRejection(reason.String())
		}
		resp.Error = reason.Error()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cancel := order.NewCancelOrder(req.OrderID, req.OwnerID, req.LinkedOrderID, s.nowFn())
	reason := s.engine.Match(cancel)

	resp := CancelOrderResponse{OrderID: cancel.LinkedOrderID, Status: cancel.Status.String()}
	if reason != order.None {
		resp.Error = reason.Error()
		writeJSON(w, http.StatusNotFound, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	depth := 0
	if raw := r.URL.Query().Get("depth"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			depth = parsed
		}
	}
	snap := s.engine.Book.Snapshot(s.nowFn(), depth)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

func parseSide(raw string) (order.Side, bool) {
	switch raw {
	case "buy":
		return order.Buy, true
	case "sell":
		return order.Sell, true
	default:
		return order.None, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
