// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"proposal-workers/internal/common/camunda"
	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/database"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/observability"
	"proposal-workers/internal/export/storage"
	"proposal-workers/internal/workers/proposal/shared"
	"proposal-workers/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting proposal worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()
	if err := obs.EnableTracing(cfg.Observability.Tracing); err != nil {
		zapLog.Warn("tracing disabled", zap.Error(err))
	}

	ctx := context.Background()

	// --- Proposal core ---
	deps, err := shared.NewDependencies(cfg.Proposal)
	if err != nil {
		zapLog.Fatal("proposal setup failed", zap.Error(err))
	}

	reg, err := registry.LoadRegistry(cfg.Camunda.RegistryPath)
	if err != nil {
		zapLog.Warn("activity registry not loaded, using built-in input schemas",
			zap.String("path", cfg.Camunda.RegistryPath), zap.Error(err))
		reg = &registry.ActivityRegistry{}
	}

	// --- Export sink and idempotency ledger ---
	sink, err := storage.NewSink(ctx, cfg.Export)
	if err != nil {
		zapLog.Fatal("export sink setup failed", zap.Error(err))
	}

	var ledger storage.Ledger = storage.NopLedger{}
	if cfg.Database.Redis.Enabled() {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, exports will not be deduplicated", zap.Error(err))
		} else {
			defer rdb.Close()
			ledger = storage.NewRedisLedger(rdb.GetClient(), cfg.Database.Redis.KeyPrefix, cfg.Export.IdempotencyTTLDuration())
			zapLog.Info("Redis connected successfully")
		}
	}
	publisher := shared.NewPublisher(sink, ledger, log.WithFields(map[string]interface{}{"component": "publisher"}))

	// --- Zeebe client with retry ---
	var client *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClient(cfg.Camunda)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Workers ---
	handlers, err := buildHandlers(handlerEnv{
		cfg:       cfg,
		deps:      deps,
		registry:  reg,
		publisher: publisher,
		obs:       obs,
		logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create handlers", zap.Error(err))
	}

	var workers []*camunda.CamundaWorker
	for _, h := range handlers {
		if !h.IsEnabled() {
			zapLog.Info("worker disabled", zap.String("taskType", h.GetTaskType()))
			continue
		}
		w := camunda.NewWorker(client.GetClient(), h, config.GetWorkerConfig(cfg, h.GetTaskType()), log)
		w.Start()
		workers = append(workers, w)
	}
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	var ready atomic.Bool
	ready.Store(true)

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			writeStatus(w, http.StatusServiceUnavailable, "stopping")
			return
		}
		hctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := client.HealthCheck(hctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "broker unreachable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Observability.MetricsAddress, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	ready.Store(false)

	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := client.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
