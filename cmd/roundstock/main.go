package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/roundstock/roundstock/internal/app"
	"github.com/roundstock/roundstock/internal/distribution"
	"github.com/roundstock/roundstock/internal/inventory"
	"github.com/roundstock/roundstock/internal/masterdata/customers"
	"github.com/roundstock/roundstock/internal/masterdata/products"
	"github.com/roundstock/roundstock/internal/masterdata/shops"
	"github.com/roundstock/roundstock/internal/observability"
	"github.com/roundstock/roundstock/internal/orders"
	platformcache "github.com/roundstock/roundstock/internal/platform/cache"
	platformdb "github.com/roundstock/roundstock/internal/platform/db"
	"github.com/roundstock/roundstock/internal/receiving"
	"github.com/roundstock/roundstock/internal/reports"
	"github.com/roundstock/roundstock/internal/rounds"
	"github.com/roundstock/roundstock/internal/shared"
	"github.com/roundstock/roundstock/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := platformdb.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformcache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	if err := reportCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}

	productsService := products.NewService(products.NewRepository(pool), reportCache)
	shopsService := shops.NewService(shops.NewRepository(pool))
	customersService := customers.NewService(customers.NewRepository(pool))
	roundsService := rounds.NewService(rounds.NewRepository(pool), auditLogger)
	receivingService := receiving.NewService(receiving.NewRepository(pool), auditLogger)
	inventoryService := inventory.NewService(inventory.NewRepository(pool), reportCache)
	ordersService := orders.NewService(orders.NewRepository(pool), auditLogger)
	distributionService := distribution.NewService(distribution.NewRepository(pool), ordersService, reportCache, auditLogger)
	reportsService := reports.NewService(reports.NewRepository(pool), reportCache)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobsClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Warn("jobs client unavailable", slog.Any("error", err))
	}
	defer func() {
		if jobsClient != nil {
			_ = jobsClient.Close()
		}
	}()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		_ = inspector.Close()
	}()

	var enqueuer jobs.Enqueuer
	if jobsClient != nil {
		enqueuer = jobsClient
	}
	jobsHandler := jobs.NewHandler(inspector, enqueuer, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		ProductsHandler:     products.NewHandler(logger, productsService),
		ShopsHandler:        shops.NewHandler(logger, shopsService),
		CustomersHandler:    customers.NewHandler(logger, customersService),
		RoundsHandler:       rounds.NewHandler(logger, roundsService),
		ReceivingHandler:    receiving.NewHandler(logger, receivingService),
		InventoryHandler:    inventory.NewHandler(logger, inventoryService),
		DistributionHandler: distribution.NewHandler(logger, distributionService),
		OrdersHandler:       orders.NewHandler(logger, ordersService),
		ReportsHandler:      reports.NewHandler(logger, reportsService),
		JobsHandler:         jobsHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
