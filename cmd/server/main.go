package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dispatchly/agentreport/internal/api"
	"github.com/dispatchly/agentreport/internal/auth"
	"github.com/dispatchly/agentreport/internal/config"
	"github.com/dispatchly/agentreport/internal/metrics"
	"github.com/dispatchly/agentreport/internal/report"
	"github.com/dispatchly/agentreport/internal/storage"
	"github.com/dispatchly/agentreport/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting agentreport backend server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create record store (DynamoDB local/aws, or noop)
	store, err := storage.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create record store")
	}

	// Create report engine and HTTP handlers
	engine := report.NewEngine(store, log.Logger)
	reportHandler := api.NewReportHandler(engine, log.Logger)
	exportHandler := api.NewExportHandler(engine, log.Logger)
	agentsHandler := api.NewAgentsHandler(store, log.Logger)
	recordsHandler := api.NewRecordsHandler(store, cfg.MaxIngestBatch, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes (no auth required)
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())

	// Internal routes (no auth - for ingestion services)
	r.Route("/internal", func(r chi.Router) {
		r.Post("/records", recordsHandler.PutRecords)
		r.Post("/agents", recordsHandler.PutAgents)
	})

	// Add auth middleware for protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Route("/api", func(r chi.Router) {
			r.Get("/agents", agentsHandler.List)
			r.Route("/reports/agents", func(r chi.Router) {
				r.Get("/", reportHandler.GetMultiAgentReport)
				r.Get("/{agentId}", reportHandler.GetSingleAgentReport)
				r.Get("/{agentId}/sessions", reportHandler.GetSessions)
			})
			r.Route("/exports", func(r chi.Router) {
				r.Get("/summary.csv", exportHandler.SummaryCSV)
				r.Get("/detail.csv", exportHandler.DetailCSV)
			})
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"agentreport-backend"}`)
}
