// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"legal-marketplace/internal/bootstrap"
	"legal-marketplace/internal/common/camunda"
	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/observability"
	"legal-marketplace/internal/consultations"
	"legal-marketplace/pkg/registry"

	// Legal Workers (2)
	acc "legal-marketplace/internal/workers/legal/analyze-case-complexity"
	clq "legal-marketplace/internal/workers/legal/classify-legal-query"

	// Matching Workers (1)
	rl "legal-marketplace/internal/workers/matching/rank-lawyers"

	// Advisory Workers (1)
	gla "legal-marketplace/internal/workers/advisory/generate-legal-advice"

	// Consultation Workers (2)
	bc "legal-marketplace/internal/workers/consultation/book-consultation"
	scn "legal-marketplace/internal/workers/consultation/send-consultation-notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs := observability.New(cfg.Observability.ServiceName+"-workers", cfg.Observability.JaegerEndpoint, cfg.Observability.SampleRatio)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = bootstrap.RetryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda)
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Backends and domain services ---
	infra, err := bootstrap.Connect(ctx, cfg, bootstrap.Needs{}, log)
	if err != nil {
		zapLog.Fatal("infrastructure init failed", zap.Error(err))
	}
	defer infra.Close(context.Background())

	svc, err := bootstrap.BuildServices(ctx, cfg, infra, log)
	if err != nil {
		zapLog.Fatal("service init failed", zap.Error(err))
	}
	defer svc.Close()

	// Booking notifications run as their own BPMN task.
	booking := consultations.NewService(svc.ConsultationStore, svc.Directory, nil, log)

	activities, err := registry.LoadRegistry(registry.DefaultPath)
	if err != nil {
		zapLog.Warn("activity registry unavailable", zap.Error(err))
		activities = registry.New()
	}

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker
	register := func(taskType string, handler camunda.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		if _, ok := activities.Find(taskType); !ok {
			zapLog.Warn("task type missing from activity registry", zap.String("taskType", taskType))
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		w := camunda.NewWorker(zeebe.GetClient(), taskType, wcfg.MaxJobsActive, config.GetDuration(wcfg.Timeout), handler, log)
		w.Start()
		workers = append(workers, w)
		zapLog.Info("worker registered",
			zap.String("taskType", taskType),
			zap.Int("maxJobsActive", wcfg.MaxJobsActive),
			zap.Int("timeout_ms", wcfg.Timeout),
		)
	}

	{
		c := clq.LoadConfig()
		c.Timeout = workerTimeout(cfg, clq.TaskType, c.Timeout)
		register(clq.TaskType, clq.NewHandler(c, log))
	}
	{
		c := acc.LoadConfig()
		c.Timeout = workerTimeout(cfg, acc.TaskType, c.Timeout)
		register(acc.TaskType, acc.NewHandler(c, svc.Directory, log))
	}
	{
		c := rl.LoadConfig()
		c.Timeout = workerTimeout(cfg, rl.TaskType, c.Timeout)
		c.SlowThreshold = config.GetDuration(cfg.Matching.SlowThreshold)
		register(rl.TaskType, rl.NewHandler(c, svc.Engine, svc.Directory, obs, log))
	}
	{
		c := gla.LoadConfig()
		c.Timeout = workerTimeout(cfg, gla.TaskType, c.Timeout)
		register(gla.TaskType, gla.NewHandler(c, svc.Advisor, log))
	}
	{
		c := bc.LoadConfig()
		c.Timeout = workerTimeout(cfg, bc.TaskType, c.Timeout)
		register(bc.TaskType, bc.NewHandler(c, booking, log))
	}
	{
		c := scn.LoadConfig()
		c.Timeout = workerTimeout(cfg, scn.TaskType, c.Timeout)
		register(scn.TaskType, scn.NewHandler(c, svc.Consultations, svc.Notifier, log))
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	checks := infra.HealthChecks()
	checks["zeebe"] = zeebe.HealthCheck

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "healthy", http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  status,
			"workers": len(workers),
			"checks":  results,
			"time":    time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping metrics server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// workerTimeout prefers the configured per-worker timeout over the handler default.
func workerTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if wcfg, ok := cfg.Workers[taskType]; ok && wcfg.Timeout > 0 {
		return config.GetDuration(wcfg.Timeout)
	}
	return fallback
}
