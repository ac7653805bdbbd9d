package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/application/achievement"
	identityapp "github.com/paperfi/backend/internal/application/identity"
	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/application/publishing"
	"github.com/paperfi/backend/internal/application/purchase"
	"github.com/paperfi/backend/internal/application/review"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/auth"
	"github.com/paperfi/backend/internal/infrastructure/cache"
	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/paperfi/backend/internal/infrastructure/event"
	"github.com/paperfi/backend/internal/infrastructure/logger"
	"github.com/paperfi/backend/internal/infrastructure/minter"
	"github.com/paperfi/backend/internal/infrastructure/persistence"
	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"github.com/paperfi/backend/internal/interfaces/http/handler"
	"github.com/paperfi/backend/internal/interfaces/http/middleware"
	"github.com/paperfi/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()
	tel := cfg.Telemetry

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           tel.Enabled,
		CollectorEndpoint: tel.CollectorEndpoint,
		SamplingRatio:     tel.SamplingRatio,
		ServiceName:       tel.ServiceName,
		Insecure:          tel.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           tel.Enabled && tel.MetricsEnabled,
		CollectorEndpoint: tel.CollectorEndpoint,
		ServiceName:       tel.ServiceName,
		Insecure:          tel.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           tel.Enabled && tel.LogsEnabled,
		CollectorEndpoint: tel.CollectorEndpoint,
		ServiceName:       tel.ServiceName,
		Insecure:          tel.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = telemetry.Bridge(log, telemetry.NewZapOTELCore(tel.ServiceName, loggerProvider, logger.ParseLevel(cfg.Log.Level)))

	log.Info("Starting PaperFi ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:   log,
		LogLevel: logger.GormLevel(cfg.Log.Level),
		Tracing: telemetry.DBTracingConfig{
			Enabled:         tel.Enabled && tel.DBTraceEnabled,
			SlowQueryThresh: tel.DBSlowQueryThresh,
		},
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver() == "sqlite" {
		// postgres schemas are managed by cmd/migrate
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Idempotency, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisStore, ok := idempotencyStore.(*cache.RedisIdempotencyStore); ok {
		blacklist = auth.NewRedisTokenBlacklist(redisStore.Client())
	}

	minters, err := minter.NewFactory(ctx, cfg.Minter, log)
	if err != nil {
		log.Fatal("Failed to create badge minter", zap.Error(err))
	}

	clock := shared.NewMonotonicClock(shared.SystemClock{})
	scope := persistence.NewGormTransactionScope(db.DB)

	accountService := identityapp.NewAccountService(scope, clock, log)
	platformService := identityapp.NewPlatformService(scope, clock, cfg.Ledger.DefaultFeePercent, log)
	paperService := publishing.NewService(scope, clock, log)
	reviewService := review.NewService(scope, clock, log)
	purchaseService := purchase.NewService(scope, clock, log)
	badgeService := achievement.NewService(scope, clock, minters, log)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(ledger.NewAuditHandler(log))

	ledgerMetrics, err := telemetry.NewLedgerMetrics(telemetry.LedgerMetricsConfig{
		Meter:    meterProvider.Meter("paperfi/ledger"),
		Logger:   log,
		Decimals: cfg.Ledger.CurrencyDecimals,
		Provider: telemetry.NewGormListingMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}
	// the bus delivers once per Publish; counting per event ID keeps metrics
	// exact if a publisher passes the same event twice
	eventBus.Subscribe(event.NewIdempotentHandler(ledger.NewMetricsHandler(ledgerMetrics), idempotencyStore, log))
	if meterProvider.IsEnabled() {
		ledgerMetrics.StartPeriodicCollection(ctx, time.Minute)
	}
	defer ledgerMetrics.Stop()

	for _, svc := range []interface{ SetEventPublisher(shared.EventPublisher) }{
		accountService, platformService, paperService, reviewService, purchaseService, badgeService,
	} {
		svc.SetEventPublisher(eventBus)
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	}
	currency := handler.Currency{Decimals: cfg.Ledger.CurrencyDecimals, Symbol: cfg.Ledger.CurrencySymbol}

	engine := router.New(router.Config{
		ServiceName:      tel.ServiceName,
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		TracingEnabled:   tracerProvider.IsEnabled(),
		IdempotencyTTL:   cfg.Idempotency.TTL,
	}, router.Dependencies{
		Logger:         log,
		JWTService:     auth.NewJWTService(cfg.JWT, clock),
		TokenBlacklist: blacklist,
		Idempotency:    idempotencyStore,
		RateLimiter:    limiter,
	}, router.Handlers{
		System:   handler.NewSystemHandler(cfg.App.Name, version, clock, db),
		Auth:     handler.NewAuthHandler(blacklist, clock),
		Account:  handler.NewAccountHandler(accountService, currency),
		Paper:    handler.NewPaperHandler(paperService),
		Review:   handler.NewReviewHandler(reviewService),
		Purchase: handler.NewPurchaseHandler(purchaseService, currency),
		Platform: handler.NewPlatformHandler(platformService, currency),
		Badge:    handler.NewBadgeHandler(badgeService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop event bus", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"traces":  tracerProvider.Shutdown,
		"metrics": meterProvider.Shutdown,
		"logs":    loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Error("Failed to flush telemetry", zap.String("signal", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
