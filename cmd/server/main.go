package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/jontech/backend/internal/application/cart"
	catalogapp "github.com/jontech/backend/internal/application/catalog"
	checkoutapp "github.com/jontech/backend/internal/application/checkout"
	eventapp "github.com/jontech/backend/internal/application/event"
	listingapp "github.com/jontech/backend/internal/application/listing"
	orderapp "github.com/jontech/backend/internal/application/order"
	receiptapp "github.com/jontech/backend/internal/application/receipt"
	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/infrastructure/auth"
	"github.com/jontech/backend/internal/infrastructure/cache"
	"github.com/jontech/backend/internal/infrastructure/config"
	"github.com/jontech/backend/internal/infrastructure/event"
	"github.com/jontech/backend/internal/infrastructure/logger"
	"github.com/jontech/backend/internal/infrastructure/mail"
	"github.com/jontech/backend/internal/infrastructure/persistence"
	"github.com/jontech/backend/internal/infrastructure/rendering"
	"github.com/jontech/backend/internal/infrastructure/telemetry"
	"github.com/jontech/backend/internal/interfaces/http/handler"
	"github.com/jontech/backend/internal/interfaces/http/middleware"
	"github.com/jontech/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting JONTECH Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry providers when enabled. Traces, metrics,
	// and logs all ship to the same collector endpoint.
	var (
		tracerProvider  *telemetry.TracerProvider
		meterProvider   *telemetry.MeterProvider
		businessMetrics *telemetry.BusinessMetrics
	)
	if cfg.Telemetry.Enabled {
		ctx := context.Background()

		tracerProvider, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()

		meterProvider, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize meter provider", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := meterProvider.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down meter provider", zap.Error(err))
			}
		}()

		loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize logger provider", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down logger provider", zap.Error(err))
			}
		}()

		// Tee application logs to the collector alongside stdout
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore)

		log.Info("Telemetry initialized",
			zap.String("collector", cfg.Telemetry.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.Telemetry.SamplingRatio),
		)
	}

	// Continuous profiling ships to Pyroscope independently of the OTLP
	// pipeline. A no-op profiler is returned when profiling is disabled.
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Profiling.Enabled,
		ServerAddress:       cfg.Profiling.ServerAddress,
		ApplicationName:     cfg.Profiling.ApplicationName,
		BasicAuthUser:       cfg.Profiling.BasicAuthUser,
		BasicAuthPassword:   cfg.Profiling.BasicAuthPassword,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && tracerProvider != nil {
		// Link trace spans to their profiles
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Error("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Attach database observability plugins
	if meterProvider != nil {
		dbMetrics, err := telemetry.NewDBMetrics(
			meterProvider.Meter("jontech-backend/db"),
			telemetry.DefaultDBMetricsConfig(),
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize database metrics", zap.Error(err))
		}
		if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
			log.Fatal("Failed to register database metrics plugin", zap.Error(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			dbMetrics.SetSQLDB(sqlDB)
			dbMetrics.StartPoolStatsCollection(context.Background())
			defer dbMetrics.Stop()
		}
	}
	if tracerProvider != nil {
		tracingCfg := telemetry.DefaultDBTracingConfig()
		tracingCfg.Enabled = true
		dbTracing := telemetry.NewDBTracingPlugin(tracingCfg, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving
	outboxRepo := event.NewGormOutboxRepository(db.DB)
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Initialize repositories. Listing and order repositories write their
	// domain events through the outbox in the same transaction.
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB, outboxPublisher)

	smartphoneRepo := persistence.NewGormListingRepository[listing.Smartphone](db.DB, outboxPublisher)
	tabletRepo := persistence.NewGormListingRepository[listing.Tablet](db.DB, outboxPublisher)
	televisionRepo := persistence.NewGormListingRepository[listing.Television](db.DB, outboxPublisher)
	audioRepo := persistence.NewGormListingRepository[listing.AudioDevice](db.DB, outboxPublisher)
	storageRepo := persistence.NewGormListingRepository[listing.StorageDevice](db.DB, outboxPublisher)
	accessoryRepo := persistence.NewGormListingRepository[listing.MobileAccessory](db.DB, outboxPublisher)
	financedRepo := persistence.NewGormListingRepository[listing.FinancedItem](db.DB, outboxPublisher)
	budgetRepo := persistence.NewGormListingRepository[listing.BudgetSmartphone](db.DB, outboxPublisher)
	dialphoneRepo := persistence.NewGormListingRepository[listing.FeaturePhoneDeal](db.DB, outboxPublisher)
	offerRepo := persistence.NewGormListingRepository[listing.LatestOffer](db.DB, outboxPublisher)
	newIphoneRepo := persistence.NewGormListingRepository[listing.NewIphone](db.DB, outboxPublisher)
	laptopRepo := persistence.NewGormListingRepository[listing.Laptop](db.DB, outboxPublisher)

	// Listing application services, one per source category
	smartphoneService := listingapp.NewService[listing.Smartphone, *listing.Smartphone](smartphoneRepo, log)
	tabletService := listingapp.NewService[listing.Tablet, *listing.Tablet](tabletRepo, log)
	televisionService := listingapp.NewService[listing.Television, *listing.Television](televisionRepo, log)
	audioService := listingapp.NewService[listing.AudioDevice, *listing.AudioDevice](audioRepo, log)
	storageService := listingapp.NewService[listing.StorageDevice, *listing.StorageDevice](storageRepo, log)
	accessoryService := listingapp.NewService[listing.MobileAccessory, *listing.MobileAccessory](accessoryRepo, log)
	financedService := listingapp.NewService[listing.FinancedItem, *listing.FinancedItem](financedRepo, log)
	budgetService := listingapp.NewService[listing.BudgetSmartphone, *listing.BudgetSmartphone](budgetRepo, log)
	dialphoneService := listingapp.NewService[listing.FeaturePhoneDeal, *listing.FeaturePhoneDeal](dialphoneRepo, log)
	offerService := listingapp.NewService[listing.LatestOffer, *listing.LatestOffer](offerRepo, log)
	newIphoneService := listingapp.NewService[listing.NewIphone, *listing.NewIphone](newIphoneRepo, log)
	laptopService := listingapp.NewService[listing.Laptop, *listing.Laptop](laptopRepo, log)

	// Projection service maps every source category into the canonical catalog
	projectionService := catalogapp.NewProjectionService(productRepo, log)
	projectionService.RegisterSource(persistence.NewListingSource[listing.Smartphone, *listing.Smartphone](smartphoneRepo, listing.CategorySmartphones))
	projectionService.RegisterSource(persistence.NewListingSource[listing.Tablet, *listing.Tablet](tabletRepo, listing.CategoryTablets))
	projectionService.RegisterSource(persistence.NewListingSource[listing.Television, *listing.Television](televisionRepo, listing.CategoryTelevisions))
	projectionService.RegisterSource(persistence.NewListingSource[listing.AudioDevice, *listing.AudioDevice](audioRepo, listing.CategoryAudio))
	projectionService.RegisterSource(persistence.NewListingSource[listing.StorageDevice, *listing.StorageDevice](storageRepo, listing.CategoryStorages))
	projectionService.RegisterSource(persistence.NewListingSource[listing.MobileAccessory, *listing.MobileAccessory](accessoryRepo, listing.CategoryAccessories))
	projectionService.RegisterSource(persistence.NewListingSource[listing.FinancedItem, *listing.FinancedItem](financedRepo, listing.CategoryMkopa))
	projectionService.RegisterSource(persistence.NewListingSource[listing.BudgetSmartphone, *listing.BudgetSmartphone](budgetRepo, listing.CategoryBudgetSmartphones))
	projectionService.RegisterSource(persistence.NewListingSource[listing.FeaturePhoneDeal, *listing.FeaturePhoneDeal](dialphoneRepo, listing.CategoryDialPhones))
	projectionService.RegisterSource(persistence.NewListingSource[listing.LatestOffer, *listing.LatestOffer](offerRepo, listing.CategoryOffers))
	projectionService.RegisterSource(persistence.NewListingSource[listing.NewIphone, *listing.NewIphone](newIphoneRepo, listing.CategoryNewIphones))
	projectionService.RegisterSource(persistence.NewListingSource[listing.Laptop, *listing.Laptop](laptopRepo, listing.CategoryLaptops))

	// Business metrics ride on the meter provider and watch catalog health
	if meterProvider != nil {
		sourceTables := map[string]string{
			listing.CategorySmartphones:       listing.Smartphone{}.TableName(),
			listing.CategoryTablets:           listing.Tablet{}.TableName(),
			listing.CategoryTelevisions:       listing.Television{}.TableName(),
			listing.CategoryAudio:             listing.AudioDevice{}.TableName(),
			listing.CategoryStorages:          listing.StorageDevice{}.TableName(),
			listing.CategoryAccessories:       listing.MobileAccessory{}.TableName(),
			listing.CategoryMkopa:             listing.FinancedItem{}.TableName(),
			listing.CategoryBudgetSmartphones: listing.BudgetSmartphone{}.TableName(),
			listing.CategoryDialPhones:        listing.FeaturePhoneDeal{}.TableName(),
			listing.CategoryOffers:            listing.LatestOffer{}.TableName(),
			listing.CategoryNewIphones:        listing.NewIphone{}.TableName(),
			listing.CategoryLaptops:           listing.Laptop{}.TableName(),
		}
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:           meterProvider.Meter("jontech-backend/business"),
			Logger:          log,
			CatalogProvider: telemetry.NewGormCatalogMetricsProvider(db.DB, sourceTables),
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		businessMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
		defer businessMetrics.Stop()
	}

	// Initialize event bus and the projection handler. The idempotency
	// store keeps redelivered outbox events from projecting twice.
	eventBus := event.NewInMemoryEventBus(log)

	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	listingSavedHandler := catalogapp.NewListingSavedHandler(projectionService, log)
	eventBus.Subscribe(event.NewIdempotentHandler(listingSavedHandler, idempotencyStore, log))

	log.Info("Event handlers registered",
		zap.Strings("listing_saved_events", listingSavedHandler.EventTypes()),
		zap.Strings("categories", projectionService.Categories()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize and start outbox processor for guaranteed event delivery
	if cfg.Event.ProcessorEnabled {
		outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
		if cfg.Event.BatchSize > 0 {
			outboxProcessorConfig.BatchSize = cfg.Event.BatchSize
		}
		if cfg.Event.PollInterval > 0 {
			outboxProcessorConfig.PollInterval = cfg.Event.PollInterval
		}
		outboxProcessorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			outboxProcessorConfig.CleanupRetention = cfg.Event.CleanupRetention
		}

		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", outboxProcessorConfig.BatchSize),
			zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
		)
	}

	// Receipt rendering stack: HTML templates rendered to PDF via headless
	// Chrome, stored on the filesystem or an S3-compatible bucket.
	templates, err := rendering.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to load receipt templates", zap.Error(err))
	}

	renderer, err := rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
		DefaultTimeout: cfg.Receipts.RenderTimeout,
		Headless:       true,
		DisableGPU:     true,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}

	var pdfStorage rendering.PDFStorage
	switch cfg.Receipts.StorageBackend {
	case "s3":
		pdfStorage, err = rendering.NewS3Storage(&rendering.S3StorageConfig{
			Endpoint:          cfg.Storage.Endpoint,
			Bucket:            cfg.Storage.Bucket,
			AccessKey:         cfg.Storage.AccessKey,
			SecretKey:         cfg.Storage.SecretKey,
			Region:            cfg.Storage.Region,
			UseSSL:            cfg.Storage.UseSSL,
			UsePathStyle:      cfg.Storage.UsePathStyle,
			KeyPrefix:         cfg.Storage.KeyPrefix,
			PresignExpiration: cfg.Storage.PresignExpiration,
			Logger:            log,
		})
	default:
		pdfStorage, err = rendering.NewFileSystemStorage(&rendering.FileSystemStorageConfig{
			BasePath: cfg.Receipts.BasePath,
			BaseURL:  cfg.Receipts.BaseURL,
			Logger:   log,
		})
	}
	if err != nil {
		log.Fatal("Failed to initialize receipt storage", zap.Error(err))
	}
	log.Info("Receipt storage ready", zap.String("backend", cfg.Receipts.StorageBackend))

	// Mail sender: real SMTP when configured, log-only otherwise
	var mailer mail.Sender
	if cfg.Mail.Enabled {
		mailer, err = mail.NewSMTPSender(&mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize SMTP sender", zap.Error(err))
		}
	} else {
		mailer = mail.NewLogSender(log)
	}

	// Initialize application services
	shippingFee, err := decimal.NewFromString(cfg.Receipts.ShippingFee)
	if err != nil {
		log.Fatal("Invalid shipping fee in configuration",
			zap.String("shipping_fee", cfg.Receipts.ShippingFee),
			zap.Error(err),
		)
	}

	receiptService := receiptapp.NewService(orderRepo, templates, renderer, pdfStorage, mailer, log)
	productService := catalogapp.NewProductService(productRepo)
	cartService := cartapp.NewService(cartRepo, productRepo, log)
	checkoutService := checkoutapp.NewService(cartRepo, productRepo, orderRepo, receiptService, shippingFee, log)
	orderService := orderapp.NewService(orderRepo, receiptService, cfg.Receipts.BaseURL, log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	if businessMetrics != nil {
		checkoutService.SetBusinessMetrics(businessMetrics)
		receiptService.SetBusinessMetrics(businessMetrics)
	}

	// JWT auth with a Redis-backed token blacklist; single-instance
	// deployments without Redis fall back to the in-memory blacklist
	jwtService := auth.NewJWTService(cfg.JWT)
	var tokenBlacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn("Redis token blacklist unavailable, using in-memory blacklist", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler(func(ctx context.Context) error {
		return db.Ping()
	})

	listingHandlers := map[string]handler.ListingRoutes{
		listing.CategorySmartphones:       handler.NewSmartphoneListingHandler(smartphoneService),
		listing.CategoryTablets:           handler.NewTabletListingHandler(tabletService),
		listing.CategoryTelevisions:       handler.NewTelevisionListingHandler(televisionService),
		listing.CategoryAudio:             handler.NewAudioDeviceListingHandler(audioService),
		listing.CategoryStorages:          handler.NewStorageDeviceListingHandler(storageService),
		listing.CategoryAccessories:       handler.NewMobileAccessoryListingHandler(accessoryService),
		listing.CategoryMkopa:             handler.NewFinancedItemListingHandler(financedService),
		listing.CategoryBudgetSmartphones: handler.NewBudgetSmartphoneListingHandler(budgetService),
		listing.CategoryDialPhones:        handler.NewFeaturePhoneDealListingHandler(dialphoneService),
		listing.CategoryOffers:            handler.NewLatestOfferListingHandler(offerService),
		listing.CategoryNewIphones:        handler.NewNewIphoneListingHandler(newIphoneService),
		listing.CategoryLaptops:           handler.NewLaptopListingHandler(laptopService),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. Tracing/Metrics - OpenTelemetry instrumentation (if enabled)
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	if tracerProvider != nil {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	if meterProvider != nil {
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	if profiler.IsEnabled() {
		engine.Use(middleware.Profiling())
	}

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// The catalog is fully public; listing surfaces are public for reads
	// but writes require a token.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/catalog",
		},
		PublicReadPrefixes: []string{
			"/api/v1/listings",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Canonical catalog (read-only, written by the projection pipeline)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)

	// Source listings, one sub-surface per category slug
	listingRoutes := router.NewDomainGroup("listings", "/listings")
	for _, slug := range listing.Categories() {
		registerListingRoutes(listingRoutes, slug, listingHandlers[slug])
	}

	// Cart
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/add", cartHandler.AddItem)
	cartRoutes.POST("/remove", cartHandler.RemoveItem)

	// Checkout
	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.POST("/validate", checkoutHandler.Validate)
	checkoutRoutes.POST("", checkoutHandler.Create)

	// Orders and receipts
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.GET("/:id/receipt", orderHandler.ReceiptStatus)
	orderRoutes.GET("/:id/receipt/download", orderHandler.DownloadReceipt)
	orderRoutes.POST("/:id/email-receipt", orderHandler.EmailReceipt)

	// System and outbox administration
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/outbox/dead", outboxHandler.GetDeadLetterEntries)
	systemRoutes.GET("/outbox/stats", outboxHandler.GetStats)
	systemRoutes.GET("/outbox/entries/:id", outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/entries/:id/retry", outboxHandler.RetryDeadEntry)
	systemRoutes.POST("/outbox/retry-all", outboxHandler.RetryAllDeadEntries)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(listingRoutes).
		Register(cartRoutes).
		Register(checkoutRoutes).
		Register(orderRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := renderer.Close(); err != nil {
		log.Error("Error closing PDF renderer", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// registerListingRoutes wires the standard listing surface for one category
func registerListingRoutes(g *router.DomainGroup, slug string, h handler.ListingRoutes) {
	g.GET("/"+slug, h.List)
	g.POST("/"+slug, h.Create)
	g.GET("/"+slug+"/:id", h.GetByID)
	g.PUT("/"+slug+"/:id", h.Update)
	g.DELETE("/"+slug+"/:id", h.Delete)
}
