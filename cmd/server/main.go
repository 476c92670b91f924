package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pfjetdev/pfgrouptravel/internal/config"
	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/handlers"
	"github.com/pfjetdev/pfgrouptravel/internal/middleware"
	"github.com/pfjetdev/pfgrouptravel/internal/services"
	"github.com/pfjetdev/pfgrouptravel/pkg/jwt"
	"github.com/pfjetdev/pfgrouptravel/pkg/notify"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting group travel intake backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := database.Migrate(migrateCtx, db.SQL(), logger)
		cancel()
		if err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
	}

	store := database.NewRecordStore(db)

	// Optional Redis: read cache and submission rate limit
	var (
		cache       services.Cache = services.NoopCache{}
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Fatalf("Invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.WithError(err).Warn("Redis not reachable at startup, continuing")
		}
		cancel()
		cache = services.NewRedisCache(redisClient, "pfgt:", cfg.Redis.CacheTTL)
		logger.Info("Redis cache enabled")
	} else {
		logger.Info("Redis not configured: caching and rate limiting disabled")
	}

	// Notification relays
	notifier := buildNotifier(cfg, logger)
	dispatcher := services.NewNotificationDispatcher(notifier, logger, cfg.Site.NotificationTimeout)

	zone, err := time.LoadLocation(cfg.Site.NotificationZone)
	if err != nil {
		logger.WithError(err).Warnf("Unknown NOTIFICATION_TIMEZONE %q, using UTC", cfg.Site.NotificationZone)
		zone = time.UTC
	}

	// Initialize services
	logger.Info("Initializing services...")
	intakeService := services.NewIntakeService(store, dispatcher, zone, logger)
	contentService := services.NewContentService(store, cache, logger)
	sitemapService := services.NewSitemapService(store, cfg.Site.URL, logger)

	cronService := services.NewCronService(sitemapService, logger)
	if err := cronService.Start(cfg.Site.SitemapRefreshCron); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}
	cronService.RunSitemapNow()

	// Initialize handlers
	intakeHandler := handlers.NewIntakeHandler(intakeService, logger, !cfg.IsProduction())
	contentHandler := handlers.NewContentHandler(contentService, logger)
	siteHandler := handlers.NewSiteHandler(sitemapService, db, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", siteHandler.Health)
	router.GET("/sitemap.xml", siteHandler.Sitemap)
	router.GET("/robots.txt", siteHandler.Robots)

	api := router.Group("/api")
	{
		intake := api.Group("")
		if redisClient != nil && cfg.RateLimit.Requests > 0 {
			limiter := services.NewRateLimitService(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window(), logger)
			intake.Use(middleware.SubmissionRateLimit(limiter))
		}
		intakeHandler.RegisterRoutes(intake)

		api.GET("/news", contentHandler.GetNews)
		api.GET("/destinations", contentHandler.GetDestinations)

		if cfg.Admin.Enabled() {
			jwtService := jwt.NewService(cfg.Admin.JWTSecret, cfg.Admin.AccessTokenExpiry)
			adminAuthService := services.NewAdminAuthService(cfg.Admin.Email, cfg.Admin.PasswordHash, jwtService)
			adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthService, logger)
			adminHandler := handlers.NewAdminHandler(services.NewLeadService(store), logger)

			admin := api.Group("/admin")
			admin.POST("/login", adminAuthHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.OperatorAuth(jwtService, logger))
			protected.GET("/profile", adminAuthHandler.GetProfile)
			protected.GET("/leads/:kind", adminHandler.ListLeads)
			logger.Info("Operator API enabled")
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	cronService.Stop()
	if err := dispatcher.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("Pending notifications abandoned")
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}

// buildNotifier fans out to every configured relay. With none configured the
// Telegram relay is kept so each skipped notification is logged.
func buildNotifier(cfg *config.Config, logger *logrus.Logger) notify.Notifier {
	telegram := notify.NewTelegramRelay(notify.TelegramConfig{
		APIURL:   cfg.Telegram.APIURL,
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
		Timeout:  cfg.Telegram.Timeout,
	})

	var relays notify.Multi
	if cfg.Telegram.Enabled() {
		relays = append(relays, telegram)
		logger.Info("Telegram relay enabled")
	} else {
		logger.Warn("Telegram credentials not configured, skipping relay")
	}

	if cfg.SMTP.Enabled() {
		email, err := notify.NewEmailRelay(notify.EmailConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			To:       cfg.SMTP.To,
		})
		if err != nil {
			logger.WithError(err).Error("Email relay disabled")
		} else {
			relays = append(relays, email)
			logger.Info("Email relay enabled")
		}
	}

	if len(relays) == 0 {
		return telegram
	}
	return relays
}
