package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/domain/usecase/admin"
	"github.com/saukimart/sauki-backend/internal/domain/usecase/agent"
	"github.com/saukimart/sauki-backend/internal/domain/usecase/catalog"
	"github.com/saukimart/sauki-backend/internal/domain/usecase/transaction"
	"github.com/saukimart/sauki-backend/internal/domain/usecase/webhook"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/handler"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/middleware"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/routes"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/cache"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/database"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/database/migration"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/gateway/amigo"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/gateway/flutterwave"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/messaging"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/observability"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/repository"
)

// telemetry bundles the metrics sink with its optional HTTP surface
type telemetry struct {
	metrics  core.Metrics
	observer middleware.HTTPObserver
	handler  http.Handler
}

func runServe(ctx context.Context) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()
	cfg, appLogger := rt.cfg, rt.logger

	switch {
	case cfg.Server.Mode != "":
		gin.SetMode(cfg.Server.Mode)
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Telemetry, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			appLogger.Warn("Failed to flush traces", map[string]any{"error": err.Error()})
		}
	}()

	dbManager, err := openDatabase(ctx, rt)
	if err != nil {
		return err
	}
	defer dbManager.Close()

	if err := dbManager.Migrator().MigrateAll(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	tel, err := setupTelemetry(cfg.Telemetry.MetricsEnabled, dbManager)
	if err != nil {
		return err
	}

	sessions, closeSessions, err := setupSessionStore(ctx, rt)
	if err != nil {
		return err
	}
	defer closeSessions()

	var publisher core.EventPublisher = messaging.NewNoopPublisher()
	if cfg.Kafka.Enabled {
		publisher = messaging.NewKafkaPublisher(cfg.Kafka, appLogger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Warn("Failed to close event publisher", map[string]any{"error": err.Error()})
		}
	}()

	// Repositories
	db := dbManager.DB()
	txRepo := repository.NewTransactionRepository(db, appLogger)
	agentRepo := repository.NewAgentRepository(db, appLogger)
	planRepo := repository.NewPlanRepository(db, appLogger)
	productRepo := repository.NewProductRepository(db, appLogger)

	// Provider clients
	payments := flutterwave.NewClient(cfg.Payment, appLogger)
	delivery := amigo.NewClient(cfg.Delivery, appLogger)

	// Use cases
	notifier := transaction.NewEventNotifier(publisher, rt.clock, appLogger)
	deliverer := transaction.NewDeliverer(delivery, txRepo, notifier, tel.metrics, rt.clock, appLogger, cfg.Delivery.Timeout)
	transactionManager := transaction.NewManager(
		txRepo,
		payments,
		deliverer,
		transaction.NewCheckoutValidator(planRepo, productRepo),
		notifier,
		tel.metrics,
		rt.clock,
		appLogger,
		cfg.Transaction.TrackLimit,
	)
	agentService := agent.NewService(agent.Dependencies{
		AgentRepo: agentRepo,
		TxRepo:    txRepo,
		PlanRepo:  planRepo,
		UoW:       dbManager.CreateUnitOfWork(),
		Payments:  payments,
		Deliverer: deliverer,
		Notifier:  notifier,
		Metrics:   tel.metrics,
		Clock:     rt.clock,
		Logger:    appLogger,
		BVN:       cfg.Payment.BVN,
	})
	catalogService := catalog.NewService(planRepo, productRepo, rt.clock, appLogger)
	adminService := admin.NewService(txRepo, agentRepo, sessions, admin.Credentials{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
		TokenSecret:  cfg.Admin.TokenSecret,
		TokenTTL:     cfg.Admin.TokenTTL,
	}, rt.clock, appLogger)
	webhookService := webhook.NewService(transactionManager, agentService, cfg.Payment.WebhookSecret, tel.metrics, appLogger)

	if cfg.Transaction.SeedPlans {
		if err := migration.CreateDefaultPlans(ctx, catalogService, appLogger); err != nil {
			appLogger.Error("Failed to create default plans", map[string]any{"error": err.Error()})
		}
	}

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tel.observer, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Transaction: handler.NewTransactionHandler(transactionManager, appLogger),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Agent:       handler.NewAgentHandler(agentService, appLogger),
		Admin:       handler.NewAdminHandler(adminService, transactionManager, appLogger),
		Webhook:     handler.NewWebhookHandler(webhookService, appLogger),
		Health:      handler.NewHealthHandler(dbManager),
	}, adminService, tel.handler)

	server := &http.Server{
		Addr:              listenAddr(cfg.Server),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}

// setupTelemetry registers Prometheus collectors, including the pool
// statistics, or falls back to a no-op sink
func setupTelemetry(enabled bool, dbManager *database.Manager) (*telemetry, error) {
	if !enabled {
		return &telemetry{metrics: observability.NoopMetrics{}}, nil
	}

	registry := observability.NewRegistry()
	metrics, err := observability.NewPrometheusMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	pool, err := dbManager.PoolCollector()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(pool); err != nil {
		return nil, fmt.Errorf("failed to register pool metrics: %w", err)
	}

	return &telemetry{
		metrics:  metrics,
		observer: metrics,
		handler:  observability.Handler(registry),
	}, nil
}

// setupSessionStore picks Redis when enabled so sessions survive restarts
// and are shared between replicas
func setupSessionStore(ctx context.Context, rt *runtime) (persistence.SessionStore, func(), error) {
	if !rt.cfg.Redis.Enabled {
		rt.logger.Warn("Redis disabled, admin sessions are kept in memory", nil)
		return cache.NewMemorySessionStore(rt.clock), func() {}, nil
	}

	client, err := cache.NewClient(ctx, rt.cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			rt.logger.Warn("Failed to close redis client", map[string]any{"error": err.Error()})
		}
	}
	return cache.NewRedisSessionStore(client, rt.cfg.Redis.KeyPrefix, rt.logger), closeFn, nil
}
