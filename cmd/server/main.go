package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/app"
	"github.com/kevin07696/stripe-gateway/internal/config"
	gatewayHandler "github.com/kevin07696/stripe-gateway/internal/handlers/gateway"
	"github.com/kevin07696/stripe-gateway/pkg/middleware"
	"github.com/kevin07696/stripe-gateway/pkg/observability"
	"github.com/kevin07696/stripe-gateway/pkg/resilience"
	"github.com/kevin07696/stripe-gateway/pkg/security"
	"github.com/kevin07696/stripe-gateway/pkg/shutdown"
)

const poolMonitorInterval = time.Minute

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		panic(err)
	}

	logger, err := security.NewLogger(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting card gateway",
		zap.String("gateway_id", cfg.Gateway.GatewayID),
		zap.String("secret_backend", cfg.Secrets.Backend),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize gateway", zap.Error(err))
	}

	shutdownManager := shutdown.NewManager(logger, cfg.Server.ShutdownTimeout)
	if gw.DB != nil {
		shutdownManager.RegisterCloser("database", gw.DB)
		gw.DB.StartPoolMonitoring(ctx, poolMonitorInterval)
	}

	timeouts := resilience.DefaultTimeoutConfig()
	if cfg.Gateway.MigrationInterval > 0 {
		worker := startMigrationWorker(gw, cfg.Gateway.MigrationInterval, timeouts, logger)
		shutdownManager.Register("migration-worker", worker.Shutdown)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger)
	shutdownManager.Register("rate-limiter", func(context.Context) error {
		rateLimiter.Shutdown()
		return nil
	})

	if !cfg.Logger.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.NewSecurityHeaders(cfg.Logger.Development).Gin(),
		observability.GinMiddleware(),
	)
	observability.RegisterRoutes(router, gw.Health)

	v1 := router.Group("/v1", rateLimiter.Gin(), middleware.Timeout(timeouts))
	gatewayHandler.NewHandler(gw.Service, gw.Account, logger.Named("http")).RegisterRoutes(v1)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	shutdownManager.Register("http-server", server.Shutdown)

	go func() {
		logger.Info("HTTP server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
			os.Exit(1)
		}
	}()

	if errs := shutdownManager.WaitForShutdown(); len(errs) > 0 {
		os.Exit(1)
	}
}

// startMigrationWorker runs one legacy migration batch per interval
func startMigrationWorker(gw *app.App, interval time.Duration, timeouts *resilience.TimeoutConfig, logger *zap.Logger) *shutdown.PeriodicWorker {
	worker := shutdown.NewPeriodicWorker("legacy-migration", interval, logger)
	worker.Start(func(ctx context.Context) {
		ctx, cancel := timeouts.MigrationContext(ctx)
		defer cancel()

		report, err := gw.Service.MigrateBatch(ctx, gw.Account, 0)
		if err != nil {
			logger.Error("Background migration batch failed", zap.Error(err))
			return
		}
		if report.Remaining == 0 && report.Migrated == 0 {
			logger.Debug("No legacy accounts left to migrate")
		}
	})
	return worker
}
