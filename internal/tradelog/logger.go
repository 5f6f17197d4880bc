// Package tradelog implements the append-only trade sink from spec.md §6,
// grounded on original_source/cpp/include/infra/trade_logger.hpp and
// binary_trade_logger.hpp (the exact 40-byte fixed-width little-endian
// record layout). The background flush loop is supervised by
// gopkg.in/tomb.v2, following saiputravu-Exchange's internal/server.go
// use of tomb for goroutine lifecycle management.
package tradelog

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	tomb "gopkg.in/tomb.v2"

	"ironbook/internal/order"
)

// Logger is the sink interface the matching engine logs trades through.
// From the engine's point of view it is synchronous and infallible;
// BinaryLogger's AsyncWriter wraps it with a bounded queue and a
// background writer for production use.
type Logger interface {
	Log(t *order.Trade)
	Flush() error
	Close() error
}

// RecordSize is the fixed size in bytes of one on-disk trade record.
const RecordSize = 40

// BinaryLogger writes fixed-width binary trade records, little-endian,
// to a file opened in append mode. Opening fails loudly if the file
// cannot be created or appended to.
type BinaryLogger struct {
	f *os.File
}

// NewBinaryLogger opens (or creates) path in append mode and returns a
// ready logger.
func NewBinaryLogger(path string) (*BinaryLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tradelog: open %q: %w", path, err)
	}
	return &BinaryLogger{f: f}, nil
}

// Log encodes and appends one trade record. Per spec.md §6:
//
//	offset  bytes  field
//	0       8      trade_id      (u64)
//	8       8      timestamp     (u64)
//	16      8      price_ticks   (i64)
//	24      4      taker_order_id(u32)
//	28      4      maker_order_id(u32)
//	32      4      qty           (i32)
//	36      1      side          (u8, 0=Buy, 1=Sell)
//	37      3      padding       (zero)
func (l *BinaryLogger) Log(t *order.Trade) {
	var buf [RecordSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(t.TradeID))
	binary.LittleEndian.PutUint64(buf[8:16], t.Timestamp)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(int64(t.PriceTicks)))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(t.TakerOrderID))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(t.MakerOrderID))
	binary.LittleEndian.PutUint32(buf[32:36], uint32(int32(t.Qty)))
	buf[36] = byte(t.Side)
	// buf[37:40] left zero: padding.
	_, _ = l.f.Write(buf[:])
}

// Flush syncs buffered writes to disk.
func (l *BinaryLogger) Flush() error {
	return l.f.Sync()
}

// Close flushes and closes the underlying file.
func (l *BinaryLogger) Close() error {
	_ = l.f.Sync()
	return l.f.Close()
}

// AsyncWriter wraps a Logger with a bounded queue and a background
// goroutine supervised by a tomb.Tomb, so the matching engine's call to
// Log never blocks on disk I/O. Grounded on saiputravu-Exchange's worker
// pool pattern (tomb.WithContext, t.Go, t.Dying()).
type AsyncWriter struct {
	inner      Logger
	innerMu    sync.Mutex // guards every call into inner: the drain loop and the full-queue fallback in Log both write to it
	queue      chan *order.Trade
	t          *tomb.Tomb
	flushEvery time.Duration
}

// NewAsyncWriter starts a background flush loop that drains queue into
// inner, flushing at least once per flushEvery even if the queue is idle.
func NewAsyncWriter(inner Logger, queueDepth int, flushEvery time.Duration) *AsyncWriter {
	w := &AsyncWriter{
		inner:      inner,
		queue:      make(chan *order.Trade, queueDepth),
		t:          new(tomb.Tomb),
		flushEvery: flushEvery,
	}
	w.t.Go(w.run)
	return w
}

func (w *AsyncWriter) run() error {
	ticker := time.NewTicker(w.flushEvery)
	defer ticker.Stop()
	for {
		select {
		case <-w.t.Dying():
			w.drain()
			return nil
		case trade := <-w.queue:
			w.innerMu.Lock()
			w.inner.Log(trade)
			w.innerMu.Unlock()
		case <-ticker.C:
			w.innerMu.Lock()
			_ = w.inner.Flush()
			w.innerMu.Unlock()
		}
	}
}

func (w *AsyncWriter) drain() {
	for {
		select {
		case trade := <-w.queue:
			w.innerMu.Lock()
			w.inner.Log(trade)
			w.innerMu.Unlock()
		default:
			w.innerMu.Lock()
			_ = w.inner.Flush()
			w.innerMu.Unlock()
			return
		}
	}
}

// Log enqueues a trade for background writing. If the queue is full, the
// write is applied synchronously, under the same lock the drain loop
// uses, so no trade is ever silently dropped or interleaved with a
// concurrent drain-loop write.
func (w *AsyncWriter) Log(t *order.Trade) {
	select {
	case w.queue <- t:
	default:
		w.innerMu.Lock()
		w.inner.Log(t)
		w.innerMu.Unlock()
	}
}

// Flush blocks until the background writer has drained the queue, then
// flushes the inner logger under the same lock the drain loop uses.
func (w *AsyncWriter) Flush() error {
	for len(w.queue) > 0 {
		time.Sleep(time.Millisecond)
	}
	w.innerMu.Lock()
	defer w.innerMu.Unlock()
	return w.inner.Flush()
}

// Close stops the background goroutine, draining any queued trades
// first, then closes the inner logger.
func (w *AsyncWriter) Close() error {
	w.t.Kill(nil)
	_ = w.t.Wait()
	return w.inner.Close()
}
