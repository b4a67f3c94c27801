package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wingcheck/wingcheck/internal/logging"
	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/server/internal/api"
	"github.com/wingcheck/wingcheck/server/internal/catalog"
	"github.com/wingcheck/wingcheck/server/internal/config"
	"github.com/wingcheck/wingcheck/server/internal/metrics"
	"github.com/wingcheck/wingcheck/server/internal/store"
	"github.com/wingcheck/wingcheck/server/internal/ws"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file (empty: defaults and WINGCHECK_* environment only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wingcheck-server: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Server.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wingcheck-server: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("wingcheck-server starting",
		zap.String("config", *configPath),
		zap.Int("http_port", cfg.Server.HTTPPort),
		zap.String("catalog_dir", cfg.Server.Catalog.Dir),
		zap.Duration("assessment_ttl", cfg.Server.Assessments.TTL),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Reference catalog, optionally hot-reloaded.
	cat := catalog.New(cfg.Server.Catalog.Dir, logger)
	if err := cat.Reload(); err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("models", cat.Count()))
	if cfg.Server.Catalog.Watch {
		go func() {
			if err := cat.Watch(ctx); err != nil {
				logger.Error("catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	// Assessment store with background TTL eviction.
	st := store.New(cfg.Server.Assessments.TTL, logger)
	go st.Run(ctx)

	m := metrics.New()

	hub := ws.New(st, cfg.Server.Feed.Interval, logger)
	go hub.Run(ctx)

	// Combined HTTP server: REST API, WebSocket feed and metrics on HTTPPort.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(cat, st, m, logger, trim.Options{MaxAdjustmentMm: cfg.Server.Trim.MaxAdjustmentMm}))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", m.Handler())

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", zap.Int("port", cfg.Server.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("wingcheck-server shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}
