package logging

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is used when NewAsyncHandler gets a non-positive size.
const DefaultBufferSize = 10000

// DroppedCounter is incremented once per record dropped on a full buffer.
type DroppedCounter interface {
	Inc()
}

type queued struct {
	handler slog.Handler
	record  slog.Record
}

// asyncCore is shared by an AsyncHandler and every handler derived from it
// through WithAttrs or WithGroup.
type asyncCore struct {
	ch   chan queued
	wg   sync.WaitGroup
	done chan struct{}

	// mu orders sends against Close: a send holds it shared, Close holds it
	// exclusively, so nothing enters ch after the worker starts draining.
	mu     sync.RWMutex
	closed bool

	dropped int64 // atomic counter
	counter atomic.Pointer[DroppedCounter]
}

// AsyncHandler is a slog.Handler that hands records to a background worker.
// Handle never blocks: when the buffer is full the record is dropped and
// counted.
type AsyncHandler struct {
	inner slog.Handler
	core  *asyncCore
}

func NewAsyncHandler(inner slog.Handler, bufferSize int) *AsyncHandler {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	c := &asyncCore{
		ch:   make(chan queued, bufferSize),
		done: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.worker()
	return &AsyncHandler{inner: inner, core: c}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(_ context.Context, r slog.Record) error {
	h.core.mu.RLock()
	defer h.core.mu.RUnlock()

	if h.core.closed {
		h.core.drop()
		return nil
	}
	select {
	case h.core.ch <- queued{handler: h.inner, record: r.Clone()}:
	default:
		h.core.drop()
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{inner: h.inner.WithAttrs(attrs), core: h.core}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{inner: h.inner.WithGroup(name), core: h.core}
}

// SetDroppedCounter mirrors the drop count into c, typically a prometheus
// counter.
func (h *AsyncHandler) SetDroppedCounter(c DroppedCounter) {
	h.core.counter.Store(&c)
}

func (h *AsyncHandler) Dropped() int64 {
	return atomic.LoadInt64(&h.core.dropped)
}

// Close stops accepting records, writes out everything already queued and
// waits for the worker to exit. It is safe to call more than once.
func (h *AsyncHandler) Close() {
	h.core.mu.Lock()
	if !h.core.closed {
		h.core.closed = true
		close(h.core.done)
	}
	h.core.mu.Unlock()
	h.core.wg.Wait()
}

func (c *asyncCore) drop() {
	atomic.AddInt64(&c.dropped, 1)
	if p := c.counter.Load(); p != nil {
		(*p).Inc()
	}
}

func (c *asyncCore) worker() {
	defer c.wg.Done()

	for {
		select {
		case q := <-c.ch:
			c.write(q)
		case <-c.done:
			// Drain remaining
			for {
				select {
				case q := <-c.ch:
					c.write(q)
				default:
					return
				}
			}
		}
	}
}

func (c *asyncCore) write(q queued) {
	if err := q.handler.Handle(context.Background(), q.record); err != nil {
		log.Printf("async log handler: write failed: %v", err)
	}
}
