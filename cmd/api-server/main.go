// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"legal-marketplace/internal/api"
	"legal-marketplace/internal/bootstrap"
	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/observability"
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
	zapLog.Info("Starting API server...", zap.String("environment", cfg.App.Environment))

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	obs := observability.New(cfg.Observability.ServiceName+"-api", cfg.Observability.JaegerEndpoint, cfg.Observability.SampleRatio)
	defer obs.Shutdown()

	ctx := context.Background()

	infra, err := bootstrap.Connect(ctx, cfg, bootstrap.Needs{Mongo: true}, log)
	if err != nil {
		zapLog.Fatal("infrastructure init failed", zap.Error(err))
	}
	defer infra.Close(context.Background())

	svc, err := bootstrap.BuildServices(ctx, cfg, infra, log)
	if err != nil {
		zapLog.Fatal("service init failed", zap.Error(err))
	}
	defer svc.Close()

	checks := make(map[string]api.HealthCheck)
	for name, check := range infra.HealthChecks() {
		checks[name] = check
	}

	server := api.NewServer(cfg.HTTP, api.Deps{
		Engine:        svc.Engine,
		Directory:     svc.Directory,
		Advisor:       svc.Advisor,
		Consultations: svc.Consultations,
		Cases:         svc.Cases,
		Payments:      svc.Payments,
		Notifier:      svc.Notifier,
		Observability: obs,
		HealthChecks:  checks,
		Currency:      cfg.Payment.Currency,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		zapLog.Info("Shutdown signal received, draining requests...")
	case err := <-errCh:
		if err != nil {
			zapLog.Error("API server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during API server shutdown", zap.Error(err))
	}

	zapLog.Info("API server stopped gracefully")
}
