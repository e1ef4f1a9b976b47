package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/marketplace/backend/internal/application/analytics"
	cartapp "github.com/marketplace/backend/internal/application/cart"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	identityapp "github.com/marketplace/backend/internal/application/identity"
	reviewapp "github.com/marketplace/backend/internal/application/review"
	tradeapp "github.com/marketplace/backend/internal/application/trade"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/marketplace/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Marketplace API
//	@version		1.0
//	@description	Multi-seller marketplace backend: catalog, carts, checkout, orders, reviews and seller analytics

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// Bootstrap logger for telemetry setup; replaced once the OTEL log
	// bridge is known
	bootLog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, cfg.App.Env, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	var extraCores []zapcore.Core
	if loggerProvider.IsEnabled() {
		extraCores = append(extraCores, loggerProvider.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Marketplace Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Env, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, cfg.App.Env, log)
	if err != nil {
		log.Fatal("Failed to initialize meter", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, cfg.App.Env, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:          cfg.Database.DBName,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		WithVariables:   cfg.App.Env == "development",
		PoolMetrics:     cfg.Telemetry.MetricsEnabled,
	}, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Token revocation lives in Redis when available
	healthChecks := map[string]handler.HealthCheck{"database": db.Ping}
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if cfg.Redis.Enabled {
		client, err := cache.NewClientFactory(cfg.Redis, cache.WithLogger(log)).Connect(ctx)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		blacklist = auth.NewRedisTokenBlacklist(client)
		healthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	} else {
		log.Warn("Redis disabled, token revocation is kept in process memory")
	}

	objects, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	policy, err := trade.PolicyByName(cfg.Orders.StatusPolicy)
	if err != nil {
		log.Fatal("Invalid order status policy", zap.Error(err))
	}

	var metrics *telemetry.MarketplaceMetrics
	if meterProvider.IsEnabled() {
		metrics, err = telemetry.NewMarketplaceMetrics(meterProvider.Meter("marketplace"))
		if err != nil {
			log.Fatal("Failed to create business metrics", zap.Error(err))
		}
	}
	var cartMetrics cartapp.Metrics
	var orderMetrics tradeapp.Metrics
	if metrics != nil {
		cartMetrics, orderMetrics = metrics, metrics
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	imageRepo := persistence.NewGormImageRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	presenter := catalogapp.NewProductPresenter(productRepo, imageRepo, catalogapp.NewMediaURLs(cfg.Media.URL))
	orderPresenter := tradeapp.NewOrderPresenter(presenter)
	orderService := tradeapp.NewOrderService(orderRepo, policy, orderPresenter, orderMetrics, log)
	checkoutService := tradeapp.NewCheckoutService(persistence.NewGormTransactionScope(db.DB), orderRepo, orderPresenter, orderMetrics, log)

	handlers := router.Handlers{
		System:   handler.NewSystemHandler(cfg.App.Name, version, healthChecks),
		Auth:     handler.NewAuthHandler(identityapp.NewAuthService(userRepo, profileRepo, jwtService, blacklist, log)),
		Profile:  handler.NewProfileHandler(identityapp.NewProfileService(userRepo, profileRepo, log)),
		User:     handler.NewUserHandler(identityapp.NewUserService(userRepo, jwtService, blacklist, log)),
		Category: handler.NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, log)),
		Product:  handler.NewProductHandler(catalogapp.NewProductService(productRepo, categoryRepo, presenter, log)),
		Image: handler.NewImageHandler(catalogapp.NewImageService(
			imageRepo, productRepo, objects, storage.NewImageProcessor(cfg.Media.MaxWidth), presenter, log)),
		Favorite:    handler.NewFavoriteHandler(catalogapp.NewFavoriteService(favoriteRepo, productRepo, presenter, log)),
		Cart:        handler.NewCartHandler(cartapp.NewService(cartRepo, productRepo, presenter, cartMetrics, log)),
		Order:       handler.NewOrderHandler(orderService, checkoutService),
		SellerOrder: handler.NewSellerOrderHandler(orderService),
		AdminOrder:  handler.NewAdminOrderHandler(orderService),
		Analytics:   handler.NewAnalyticsHandler(analyticsapp.NewService(analyticsRepo, log)),
		Review:      handler.NewReviewHandler(reviewapp.NewService(reviewRepo, productRepo, log)),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// request id, recovery, tracing, metrics, profiling, logging,
	// security headers, CORS, body limit, rate limit, media base
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{MeterProvider: meterProvider, Logger: log}))
	profilingCfg := middleware.DefaultProfilingConfig()
	profilingCfg.Enabled = profiler.IsEnabled()
	engine.Use(middleware.ProfilingWithConfig(profilingCfg))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engine.Use(middleware.MediaBase(cfg.Media.URL))

	guards := router.Guards{
		Auth:         middleware.JWTAuthMiddleware(jwtService, blacklist, log),
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(jwtService, blacklist, log),
		CartSession:  middleware.CartSession(middleware.NewCartSessionStore(cfg.Session), cfg.Session.CookieName, log),
		Permission:   middleware.PermissionConfig{Logger: log},
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		guards.AuthRateLimit = middleware.RateLimitByKey(authLimiter, middleware.CallerKey)
	}

	// Outside API versioning
	engine.GET("/health", handlers.System.Health)
	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.Storage.Driver != "s3" && !isAbsoluteURL(cfg.Media.URL) {
		engine.Static("/"+strings.Trim(cfg.Media.URL, "/"), cfg.Media.Root)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	for _, group := range router.Marketplace(handlers, guards) {
		r.Register(group)
		log.Debug("Routes registered", zap.String("group", group.Name()), zap.Int("routes", len(group.Routes())))
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
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
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited")
}

func isAbsoluteURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
