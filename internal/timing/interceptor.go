package timing

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// DefaultPrecision is the number of decimal places kept in elapsed_ms.
const DefaultPrecision = 3

// Recorder receives every measured duration in addition to the log line.
// It is called after the handler returns, so router state on r is final.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveLatency(r *http.Request, d time.Duration)
}

// Interceptor times a request across its handler and logs the result.
type Interceptor struct {
	logger    *slog.Logger
	level     slog.Level
	precision int
	recorder  Recorder
	now       func() time.Time
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithLogger sets the sink for the elapsed-time line. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(i *Interceptor) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithLevel sets the level of the elapsed-time line. Defaults to INFO.
func WithLevel(level slog.Level) Option {
	return func(i *Interceptor) { i.level = level }
}

// WithPrecision sets how many decimals of a millisecond are logged.
func WithPrecision(p int) Option {
	return func(i *Interceptor) { i.precision = p }
}

// WithRecorder forwards every measured duration to r.
func WithRecorder(r Recorder) Option {
	return func(i *Interceptor) { i.recorder = r }
}

// WithClock replaces time.Now. The clock must be monotonic.
func WithClock(now func() time.Time) Option {
	return func(i *Interceptor) {
		if now != nil {
			i.now = now
		}
	}
}

// New returns an Interceptor logging to slog.Default() at INFO unless overridden.
func New(opts ...Option) *Interceptor {
	i := &Interceptor{
		logger:    slog.Default(),
		level:     slog.LevelInfo,
		precision: DefaultPrecision,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Before is the pre-phase. The returned request must be the one passed to
// the handler and later to After.
func (i *Interceptor) Before(r *http.Request) *http.Request {
	return r.WithContext(Start(r.Context(), i.now()))
}

// After is the post-phase. It panics if r did not go through Before, or if
// its stamp was already consumed: both mean the phases were wired wrong and
// no meaningful duration exists.
func (i *Interceptor) After(r *http.Request) time.Duration {
	d, err := Stop(r.Context(), i.now())
	if err != nil {
		panic(fmt.Errorf("timing: %s %s: %w", r.Method, r.URL.Path, err))
	}

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Float64("elapsed_ms", Milliseconds(d, i.precision)),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	i.logger.LogAttrs(r.Context(), i.level, "request took", attrs...)

	if i.recorder != nil {
		i.recorder.ObserveLatency(r, d)
	}
	return d
}

// Wrap decorates next with Before and After. The ResponseWriter is handed to
// next as-is, so status, headers and body are exactly what next produced.
// If next panics, After does not run and the panic propagates.
func (i *Interceptor) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = i.Before(r)
		next.ServeHTTP(w, r)
		i.After(r)
	})
}

// Middleware returns chi-compatible middleware timing every request.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return New(opts...).Wrap
}
