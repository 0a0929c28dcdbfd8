package metrics

import (
	"net/http"
	"strconv"
	"sync"
)

// wrappedWriter captures the status code from WriteHeader.
type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

var writerPool = sync.Pool{
	New: func() any {
		return &wrappedWriter{}
	},
}

func (w *wrappedWriter) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *wrappedWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.statusCode = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *wrappedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Flush implements http.Flusher.
func (w *wrappedWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware returns chi-compatible middleware counting requests by status.
// Durations are not measured here; they arrive through ObserveLatency.
func Middleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.InFlight.Inc()
			defer m.InFlight.Dec()

			ww := writerPool.Get().(*wrappedWriter)
			ww.ResponseWriter = w
			ww.statusCode = http.StatusOK
			ww.written = false

			next.ServeHTTP(ww, r)

			m.RequestsTotal.WithLabelValues(MethodLabel(r), RouteLabel(r), strconv.Itoa(ww.statusCode)).Inc()

			ww.ResponseWriter = nil
			writerPool.Put(ww)
		})
	}
}
