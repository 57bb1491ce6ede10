package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appLogger "github.com/FACorreiaa/go-poi-itinerary/app/logger"
	"github.com/FACorreiaa/go-poi-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-itinerary/app/tracer"
	"github.com/FACorreiaa/go-poi-itinerary/config"
	"github.com/FACorreiaa/go-poi-itinerary/internal/container"
	"github.com/FACorreiaa/go-poi-itinerary/internal/router"
)

// @title						POI Itinerary API
// @version					1.0
// @description				Ranks one-place-per-category itineraries over a curated place catalog.
// @BasePath					/api/v1
// @schemes					http https
func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.New(cfg.Mode, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	// Without the exporter the global providers stay no-op and every
	// instrument below is still safe to call.
	shutdownTelemetry := func(context.Context) error { return nil }
	if cfg.Handlers.Prometheus.Enabled {
		shutdownTelemetry, err = tracer.InitTracingAndMetrics(cfg.ServiceName, cfg.Handlers.Prometheus.Port, logger)
		if err != nil {
			logger.Error("Failed to initialize telemetry", slog.Any("error", err))
			os.Exit(1)
		}
	}
	metrics.InitAppMetrics(cfg.ServiceName)

	// --- Dependencies ---
	c, err := container.NewContainer(ctx, &cfg, metrics.Get(), logger)
	if err != nil {
		logger.Error("Failed to build application container", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	mainRouter := router.SetupRouter(&router.Config{
		ItineraryHandler: c.ItineraryHandler,
		SessionHandler:   c.SessionHandler,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		PromptRateLimit:  cfg.LLM.RateLimitPerMinute,
	})

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(cfg.Server.Timeout))
	r.Use(middleware.Compress(5, "application/json"))
	r.Mount("/", mainRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      otelhttp.NewHandler(r, cfg.ServiceName),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server",
			slog.String("address", serverAddress),
			slog.Int("catalog_places", c.Catalog.Len()))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", slog.Any("error", err))
	}

	logger.Info("Application shut down complete.")
}
