// Package timing measures how long a request spends inside its handler.
//
// A start stamp is attached to the request context before the handler runs
// and consumed after it returns. Stamps live only in the request's own
// context, so concurrent requests never observe each other's timestamps.
package timing

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"
)

var (
	// ErrNotStarted is returned when a request reaches the post-phase without
	// a start stamp in its context.
	ErrNotStarted = errors.New("timing: request has no start timestamp")

	// ErrAlreadyStopped is returned when a start stamp is read a second time.
	ErrAlreadyStopped = errors.New("timing: start timestamp already consumed")
)

type stampKey struct{}

// stamp is the per-request start time. time.Now carries a monotonic reading,
// so Sub between two stamps taken in-process ignores wall-clock changes.
type stamp struct {
	start    time.Time
	consumed atomic.Bool
}

// Start returns a copy of ctx carrying now as the request's start time.
func Start(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, stampKey{}, &stamp{start: now})
}

// Started reports whether ctx carries a start stamp that has not been
// consumed yet.
func Started(ctx context.Context) bool {
	s, ok := ctx.Value(stampKey{}).(*stamp)
	return ok && !s.consumed.Load()
}

// Stop consumes the start stamp in ctx and returns now minus the start time.
// The result is never negative.
func Stop(ctx context.Context, now time.Time) (time.Duration, error) {
	s, ok := ctx.Value(stampKey{}).(*stamp)
	if !ok {
		return 0, ErrNotStarted
	}
	if !s.consumed.CompareAndSwap(false, true) {
		return 0, ErrAlreadyStopped
	}
	d := now.Sub(s.start)
	if d < 0 {
		d = 0
	}
	return d, nil
}

// Milliseconds converts d to milliseconds rounded to precision decimal places.
func Milliseconds(d time.Duration, precision int) float64 {
	ms := float64(d) / float64(time.Millisecond)
	if precision < 0 {
		return ms
	}
	scale := math.Pow10(precision)
	return math.Round(ms*scale) / scale
}
