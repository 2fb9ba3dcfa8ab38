package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"veeloway/internal/app"
	"veeloway/internal/auth"
	"veeloway/internal/config"
	"veeloway/internal/handler"
	"veeloway/internal/middleware"
	internalRedis "veeloway/internal/redis"
	"veeloway/internal/repository"
	"veeloway/internal/repository/memory"
	"veeloway/internal/repository/postgres"
	"veeloway/internal/service"
	"veeloway/internal/snapshot"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// New Relic first so the datastores can be instrumented.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Redis backs sessions, idempotency caching, positions and snapshots,
	// so it is needed under either storage driver.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	store, err := newStore(ctx, cfg, nrApp, redisClient, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	logger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	server := wireServer(store, redisClient, nrApp, cfg, logger)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// newStore selects the storage driver. The memory driver keeps state in
// process and resumes from Redis snapshots; the postgres driver persists
// everything in the database.
func newStore(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application, redisClient *redis.Client, logger *zap.Logger) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(db), nil
	default:
		store := memory.NewStore(snapshot.New(redisClient, logger))
		if err := store.Load(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(store repository.Store, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, logger *zap.Logger) *http.Server {
	// Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Services.
	customerService := service.NewCustomerService(store)
	scooterService := service.NewScooterService(store, locationStore)
	contractService := service.NewContractService(store, lockStore, cacheStore)
	cashFlowService := service.NewCashFlowService(store)
	fleetService := service.NewFleetService(store, locationStore)
	dashboardService := service.NewDashboardService(store, cacheStore)
	reportService := service.NewReportService(store)

	// Handlers.
	deps := app.RouterDeps{
		CustomerHandler:  handler.NewCustomerHandler(customerService),
		ScooterHandler:   handler.NewScooterHandler(scooterService, fleetService),
		ContractHandler:  handler.NewContractHandler(contractService),
		CashFlowHandler:  handler.NewCashFlowHandler(cashFlowService),
		DashboardHandler: handler.NewDashboardHandler(dashboardService),
		ReportHandler:    handler.NewReportHandler(reportService),
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
		Logger:           logger,
	}

	if cfg.Auth.Enabled {
		provider := auth.NewHTTPIdentityProvider(cfg.Auth.ProviderURL, cfg.Auth.ProviderTimeout)
		sessions := auth.NewSessionStore(redisClient, cfg.Auth.SessionTTL)
		deps.AuthHandler = handler.NewAuthHandler(provider, sessions, int(cfg.Auth.SessionTTL.Seconds()))
		deps.SessionGuard = middleware.SessionGuard(sessions)
	}

	router := app.NewRouter(deps)

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
