package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sertdev/reqtimer/internal/config"
	"github.com/sertdev/reqtimer/internal/logging"
	"github.com/sertdev/reqtimer/internal/metrics"
	"github.com/sertdev/reqtimer/internal/server"
	"github.com/sertdev/reqtimer/internal/slogger"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Validate config
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	// 3. Setup structured logging behind a non-blocking sink
	asyncHandler := logging.NewAsyncHandler(slogger.NewHandler(os.Stdout, cfg.LogFormat, cfg.LogLevel), cfg.LogBufferSize)
	defer asyncHandler.Close()
	logger := slogger.Setup(asyncHandler)

	// 4. Initialize metrics (if enabled)
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
		asyncHandler.SetDroppedCounter(m.DroppedLogsTotal)
	}

	// 5. Build the router
	var ready atomic.Bool
	router := server.New(cfg, &server.Opts{
		Logger:  logger,
		Metrics: m,
		Ready:   &ready,
	})

	srv := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     router,
		ReadTimeout: time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		IdleTimeout: time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Bind before reporting ready so /ready never precedes an open socket.
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		asyncHandler.Close()
		log.Fatalf("failed to listen on %s: %v", cfg.ListenAddr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("reqtimer listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	ready.Store(true)

	select {
	case <-done:
	case err := <-serveErr:
		asyncHandler.Close()
		log.Fatalf("server error: %v", err)
	}

	ready.Store(false)
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		return
	}
	logger.Info("server stopped")
}
