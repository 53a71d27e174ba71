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

	"subsmanager-miniapp/internal/config"
	"subsmanager-miniapp/internal/database"
	"subsmanager-miniapp/internal/format"
	"subsmanager-miniapp/internal/handlers"
	"subsmanager-miniapp/internal/middleware"
	"subsmanager-miniapp/internal/models"
	"subsmanager-miniapp/internal/render"
	"subsmanager-miniapp/internal/repositories"
	"subsmanager-miniapp/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout        = 10 * time.Second
	actionLogPruneInterval = time.Hour
	viewStateSweepInterval = 10 * time.Minute
)

type serviceContainer struct {
	Dashboard services.DashboardServiceInterface
	Store     services.StateStoreInterface
	Journal   services.ActionJournalInterface
	Metrics   services.MetricsRecorderInterface
	InitData  services.InitDataServiceInterface
	Tokens    services.TokenServiceInterface
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	formatter, err := format.New(cfg.Locale.Language, cfg.Locale.CurrencySymbol)
	if err != nil {
		logger.Error("invalid locale configuration", "error", err)
		os.Exit(1)
	}

	renderer, err := render.New()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := initializeServices(cfg, db, logger)
	e := setupRouter(ctx, cfg, db, svc, renderer, formatter, logger)

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("mini app server starting", "address", server.Addr, "env", cfg.Server.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	go pruneActionLogs(ctx, svc.Journal, cfg.Database.ActionLogRetention, logger)
	go sweepViewStates(ctx, svc.Store, cfg.Session.TokenDuration, logger)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// pruneActionLogs trims the action journal once at startup and then hourly until ctx ends.
func pruneActionLogs(ctx context.Context, journal services.ActionJournalInterface, retention time.Duration, logger *slog.Logger) {
	if retention <= 0 {
		return
	}
	ticker := time.NewTicker(actionLogPruneInterval)
	defer ticker.Stop()
	for {
		if _, err := journal.Prune(ctx, retention); err != nil {
			logger.Warn("failed to prune action logs", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// sweepViewStates drops in-memory view states idle for longer than the
// session lifetime; they are rebuilt from the persisted preferences.
func sweepViewStates(ctx context.Context, store services.StateStoreInterface, idle time.Duration, logger *slog.Logger) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(viewStateSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.Sweep(idle); removed > 0 {
				logger.Debug("swept idle view states", "removed", removed)
			}
		}
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func initializeServices(cfg *config.Config, db *database.DB, logger *slog.Logger) *serviceContainer {
	viewSessionRepo := repositories.NewViewSessionRepository(db.DB)
	actionLogRepo := repositories.NewActionLogRepository(db.DB)

	metrics := services.NewPrometheusMetrics()

	breaker := services.NewCircuitBreaker(services.CircuitBreakerConfig{
		MaxFailures:     cfg.Backend.BreakerMaxFailures,
		ResetTimeout:    cfg.Backend.BreakerResetTimeout,
		HalfOpenMaxSucc: 1,
	}, func(from, to models.CircuitBreakerState) {
		metrics.RecordGauge(services.MetricCircuitBreakerState, float64(to), map[string]string{"service": "subscription_backend"})
		logger.Warn("circuit breaker state changed", "service", "subscription_backend", "from", from.String(), "to", to.String())
	})
	metrics.RecordGauge(services.MetricCircuitBreakerState, float64(services.StateClosed), map[string]string{"service": "subscription_backend"})

	gateway := services.NewSubscriptionGateway(
		cfg.Backend.BaseURL,
		&http.Client{Timeout: cfg.Backend.Timeout},
		breaker,
		metrics,
		logger,
	)

	store := services.NewStateStore(viewSessionRepo, logger)
	journal := services.NewActionJournal(actionLogRepo, logger)

	return &serviceContainer{
		Dashboard: services.NewDashboardService(gateway, store, journal, metrics, logger),
		Store:     store,
		Journal:   journal,
		Metrics:   metrics,
		InitData:  services.NewInitDataService(&cfg.Telegram),
		Tokens:    services.NewTokenService(&cfg.Session),
	}
}

func setupRouter(ctx context.Context, cfg *config.Config, db *database.DB, svc *serviceContainer, renderer *render.Renderer, formatter *format.Formatter, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewErrorHandler(logger, prometheus.DefaultRegisterer).Handle

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(ctx, cfg.Security))

	healthHandler := handlers.NewHealthCheckHandler(db)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.StaticFS("/static", render.StaticFS())

	app := e.Group("/app", middleware.Identity(middleware.IdentityConfig{
		InitData:         svc.InitData,
		Tokens:           svc.Tokens,
		Metrics:          svc.Metrics,
		Logger:           logger,
		CookieName:       cfg.Session.CookieName,
		AllowQueryUserID: cfg.Telegram.AllowQueryUserID,
		SecureCookie:     cfg.IsProduction(),
	}))
	handlers.NewMiniAppHandler(svc.Dashboard, svc.Store, svc.Journal, svc.Metrics, formatter, logger).RegisterRoutes(app)

	return e
}
