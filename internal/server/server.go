package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sertdev/reqtimer/internal/config"
	"github.com/sertdev/reqtimer/internal/metrics"
	"github.com/sertdev/reqtimer/internal/timing"
)

// Opts holds optional server dependencies.
type Opts struct {
	Logger  *slog.Logger     // sink for the timing line; nil means slog.Default()
	Metrics *metrics.Metrics // nil disables /metrics and latency histograms
	Ready   *atomic.Bool     // readiness flag for /ready; nil means always ready
}

// New creates and configures the chi router with all routes mounted.
func New(cfg *config.Config, opts *Opts) *chi.Mux {
	if opts == nil {
		opts = &Opts{}
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	timingOpts := []timing.Option{
		timing.WithLogger(opts.Logger),
		timing.WithPrecision(cfg.TimingPrecision),
	}
	if opts.Metrics != nil {
		r.Use(metrics.Middleware(opts.Metrics))
		timingOpts = append(timingOpts, timing.WithRecorder(opts.Metrics))
	}
	r.Use(timing.Middleware(timingOpts...))

	r.Get("/", HelloHandler(cfg.Greeting))

	// Probes (no auth)
	r.Get("/health", HealthHandler())
	r.Get("/ready", ReadinessHandler(opts.Ready))

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SecurityHeaders sets conservative response headers on every request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		next.ServeHTTP(w, r)
	})
}
