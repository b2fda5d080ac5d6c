// Package app wires configuration, the dataset, services and the HTTP
// server into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deliverypulse/internal/config"
	"deliverypulse/internal/dataset"
	apperrors "deliverypulse/internal/errors"
	"deliverypulse/internal/infrastructure"
	custommw "deliverypulse/internal/middleware"
	"deliverypulse/internal/services"
	handlers "deliverypulse/internal/transport/http"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Application is the main application container.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Dataset *dataset.Dataset
	Router  *chi.Mux
	Server  *http.Server

	Data    *services.DataService
	Reports *services.ReportService

	errorHandler *apperrors.ErrorHandler
}

// Options override parts of the loaded configuration.
type Options struct {
	// DataFile overrides Paths.DataFile when non-empty.
	DataFile string
}

// NewApplication loads configuration, the dataset and wires all
// services and routes. A dataset that fails to load is fatal; the
// server never starts without valid data.
func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DataFile != "" {
		cfg.Paths.DataFile = opts.DataFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	ds, err := dataset.Load(cfg.Paths.DataFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Dataset: ds,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() {
	a.errorHandler = apperrors.NewErrorHandler(a.Logger, false)
	a.Data = services.NewDataService(a.Dataset, a.Logger)
	a.Reports = services.NewReportService(a.Data, a.Config.Paths.ReportsDir, a.Logger)
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	// Metrics endpoint stays outside the main middleware group
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Metrics)
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)
		r.Use(custommw.Compress(5))

		if a.Config.Security.EnableCORS {
			r.Use(custommw.CORS(custommw.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Use(custommw.Timeout(a.Config.Server.WriteTimeout, a.Logger))

		dashboard := handlers.NewDashboardHandler(a.Data, a.errorHandler, a.Logger)
		data := handlers.NewDataHandler(a.Data, a.errorHandler, a.Logger)
		chart := handlers.NewChartHandler(a.Data, a.errorHandler, a.Logger)
		report := handlers.NewReportHandler(a.Reports, a.errorHandler, a.Logger)
		export := handlers.NewExportHandler(a.Data, a.errorHandler, a.Logger)
		health := handlers.NewHealthHandler(a.Data, Version)

		r.Get("/", dashboard.GetDashboard)
		r.Get("/charts/{name}", chart.GetChart)

		r.Route("/api", func(r chi.Router) {
			r.Get("/aggregates", data.GetAggregates)
			r.Get("/platforms", data.GetPlatforms)
			r.Get("/categories", data.GetCategories)
			r.Post("/reports", report.GenerateReport)
			r.Get("/export.csv", export.ExportCSV)
			r.Get("/health", health.GetHealth)
		})

		r.NotFound(a.errorHandler.NotFound)
		r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)
	})

	a.Router = r
}

// createServer creates the HTTP server with configured timeouts.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Addr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until the context is cancelled
// or a shutdown signal arrives.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version),
			slog.String("dataset", a.Dataset.Source()),
			slog.Int("rows", a.Dataset.Len()))

		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.Info("context cancelled, shutting down")
	}

	return a.Stop()
}

// Stop gracefully shuts down the server.
func (a *Application) Stop() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		return err
	}

	a.Logger.Info("server stopped")
	return infrastructure.CloseLogFile()
}
