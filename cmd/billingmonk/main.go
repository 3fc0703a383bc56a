package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devenkhatri/billing-monk-sub000/internal/adapters/sheets"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/handlers"
	"github.com/devenkhatri/billing-monk-sub000/internal/middleware"
	"github.com/devenkhatri/billing-monk-sub000/internal/platform/config"
)

// @title BillingMonk API
// @version 1.0
// @description Invoicing and time tracking backend backed by a Google Spreadsheet.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds, err := cfg.ServiceAccountJSON()
	if err != nil {
		logger.Error("Failed to load service account credentials", slog.String("error", err.Error()))
		os.Exit(1)
	}

	api, err := sheets.NewGoogleAPI(ctx, cfg.SpreadsheetID, creds)
	if err != nil {
		logger.Error("Failed to initialize sheets client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	exec := sheets.NewRetryExecutor(sheets.RetryConfig{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		MaxDelay:    cfg.RetryMaxDelay,
		MinInterval: cfg.MinCallInterval,
		CallTimeout: cfg.CallTimeout,
	}, logger)
	boot := sheets.NewBootstrapper(api, exec, logger)
	store := sheets.NewStore(api, exec, boot, logger)
	logger.Info("Sheet store initialized", slog.String("spreadsheet_id", cfg.SpreadsheetID))

	repos := sheets.NewRepositoryProvider(store)
	serviceContainer := services.NewServiceContainer(repos)

	// Background recurring invoice generation.
	scheduler := services.NewRecurringScheduler(serviceContainer.Recurring, cfg.SchedulerInterval, logger)
	go scheduler.Run(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
