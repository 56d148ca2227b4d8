package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdata-service/internal/infrastructure/config"
	"flightdata-service/internal/infrastructure/persistence"
	"flightdata-service/internal/interface/api"
	"flightdata-service/internal/usecase"
	"flightdata-service/pkg/logger"
	"flightdata-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		logger.NewLogger().Fatal("Failed to create logger", "error", err)
	}
	defer log.Sync()
	log.Info("Starting Flight Data Service", "version", cfg.AppVersion)

	policy := usecase.PolicyFailSoft
	if !cfg.FailSoft {
		policy = usecase.PolicyStrict
	}

	// Set up the lookup service; it owns the database handle
	flightService, err := usecase.Open(
		cfg.DatabaseURI,
		log,
		persistence.Options{LogSQL: cfg.LogSQL},
		usecase.WithErrorPolicy(policy),
		usecase.WithMetrics(metrics.NewMetrics(cfg.MetricsNamespace)),
	)
	if err != nil {
		log.Fatal("Failed to open database", "error", err)
	}
	defer flightService.Close()
	log.Info("Flight lookup service ready", "policy", policy.String())

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	api.NewFlightHandler(flightService, log).Register(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	if err := flightService.Close(); err != nil {
		log.Error("Database close error", "error", err)
	}

	log.Info("Flight Data Service stopped")
}
