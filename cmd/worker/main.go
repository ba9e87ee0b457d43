package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/docintake/internal/bootstrap"
	"github.com/kirillkom/docintake/internal/config"
	"github.com/kirillkom/docintake/internal/core/domain"
	"github.com/kirillkom/docintake/internal/observability/logging"
	"github.com/kirillkom/docintake/internal/observability/metrics"
)

// The worker is an observer on the processed-document feed: it keeps an
// audit log and consumption metrics but never mutates intake state.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewJSONLogger("docintake-worker", cfg.LogLevel))

	if cfg.NATSURL == "" {
		slog.Error("worker requires NATS_URL to be set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		slog.Error("bootstrap error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("docintake-worker")
	metricsServer := &http.Server{
		Addr:        ":" + cfg.WorkerMetricsPort,
		Handler:     workerMetrics.Handler(),
		ReadTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Stream.SubscribeDocumentProcessed(ctx, func(_ context.Context, evt domain.ProcessedEvent) error {
		lag := time.Since(evt.Timestamp)
		workerMetrics.RecordEvent("docintake-worker", string(evt.Format), nil)
		workerMetrics.ObserveLag("docintake-worker", lag)
		slog.Info("document_processed",
			"entry_id", evt.EntryID,
			"format", evt.Format,
			"intent", evt.Intent,
			"source_info", evt.SourceInfo,
			"lag_ms", float64(lag.Microseconds())/1000.0,
		)
		return nil
	})
	if err != nil {
		slog.Error("worker subscribe error", "error", err)
		os.Exit(1)
	}
}
