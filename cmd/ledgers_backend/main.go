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

	"github.com/SscSPs/ledger_books/internal/adapters/collections"
	"github.com/SscSPs/ledger_books/internal/adapters/events/kafka"
	"github.com/SscSPs/ledger_books/internal/adapters/storage/memory"
	"github.com/SscSPs/ledger_books/internal/adapters/storage/redisstore"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/core/services"
	"github.com/SscSPs/ledger_books/internal/handlers"
	"github.com/SscSPs/ledger_books/internal/jobs"
	"github.com/SscSPs/ledger_books/internal/middleware"
	"github.com/SscSPs/ledger_books/internal/platform/config"
	"github.com/SscSPs/ledger_books/internal/platform/lock"
	"github.com/SscSPs/ledger_books/internal/platform/logging"
	"github.com/SscSPs/ledger_books/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_books/internal/utils"
	"github.com/SscSPs/ledger_books/internal/utils/idgen"
	"github.com/SscSPs/ledger_books/pkg/database"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title Ledger Books API
// @version 1.0
// @description Cash and bank books, receivables and payables, and payment posting.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	utils.SetDefaultCurrency(cfg.CurrencySymbol, cfg.CurrencyLocale)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingers := map[string]handlers.Pinger{}

	// --- Primary store ---
	var primary portsrepo.CollectionStore
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dbPool.Close()
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pgStore := pgsql.NewCollectionStore(dbPool)
		primary = pgStore
		pingers["postgres"] = pgStore
	} else {
		logger.Warn("No database configured, collections are kept in memory")
		primary = memory.NewCollectionStore()
	}

	// --- Cache store and locks ---
	var (
		cache  portsrepo.CollectionStore
		locker portssvc.ObligationLocker = lock.NewLocalLocker()
	)
	if cfg.RedisAddr != "" {
		client, err := redisstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := client.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()

		redisStore := redisstore.NewCollectionStore(client, cfg.RedisKeyPrefix)
		cache = redisStore
		pingers["redis"] = redisStore
		locker = lock.NewRedisLocker(client, cfg.RedisKeyPrefix, cfg.LockTTL)
		logger.Info("Redis cache store and obligation locks enabled.")
	}

	facade, err := collections.NewFacade(primary, cache)
	if err != nil {
		logger.Error("Failed to initialize collection facade", slog.String("error", err.Error()))
		os.Exit(1)
	}
	reconciler := services.NewReconciler(facade, nil)
	ledgerRepo := collections.NewLedgerRepository(facade, reconciler)

	// --- Payment events ---
	var publisher portssvc.EventPublisher = kafka.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaPaymentsTopic)
		if err != nil {
			logger.Error("Failed to initialize kafka publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		publisher = kafkaPublisher
		logger.Info("Publishing payment events", slog.String("topic", cfg.KafkaPaymentsTopic))
	}
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logger.Error("Error closing event publisher", slog.String("error", cerr.Error()))
		}
	}()

	ids, err := idgen.New(cfg.IDWorker)
	if err != nil {
		logger.Error("Invalid ID_WORKER", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg,
		portsrepo.RepositoryProvider{Collections: facade, LedgerRepo: ledgerRepo},
		services.ContainerOptions{
			Reconciler: reconciler,
			Locker:     locker,
			Publisher:  publisher,
			IDs:        ids,
			Formatter:  utils.NewCurrencyFormatter(cfg.CurrencySymbol, cfg.CurrencyLocale),
		})

	// --- Background jobs ---
	if facade.HasStore(domain.StoreCache) && cfg.DatabaseURL != "" {
		refresher := jobs.NewCacheRefresher(facade, cfg.CacheRefreshEvery, logger)
		refresher.Start(ctx)
		defer refresher.Stop()
	}

	paymentLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteOptions{
		Pingers:        pingers,
		PaymentLimiter: paymentLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
