package main

import (
	"fmt"
	"log"
	"net/http"

	"deadyet/internal/config"
	"deadyet/internal/handlers"
	"deadyet/internal/jobs"
	"deadyet/internal/middleware"
	"deadyet/internal/repositories/mongodb"
	"deadyet/internal/services"
	"deadyet/pkg/cache"
	"deadyet/pkg/database"
	"deadyet/pkg/logger"
	"deadyet/pkg/mailer"
	"deadyet/pkg/sms"
	"deadyet/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; without it the sweep lock and status cache degrade
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, running without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	var serviceCache services.Cache
	if redisCache != nil {
		serviceCache = redisCache
	}

	// Email transport
	var mailProvider mailer.MailProvider
	switch cfg.Mailer.Provider {
	case "smtp":
		mailProvider = mailer.NewSMTPProvider(
			cfg.Mailer.SMTP.Host,
			cfg.Mailer.SMTP.Port,
			cfg.Mailer.SMTP.Username,
			cfg.Mailer.SMTP.Password,
			cfg.Mailer.FromEmail,
			cfg.Mailer.FromName,
		)
	default:
		mailProvider = mailer.NewResendProvider(cfg.Mailer.Resend.APIKey, cfg.Mailer.FromEmail, cfg.Mailer.FromName)
	}

	// SMS is a secondary channel, off unless configured
	var smsProvider sms.SMSProvider
	if cfg.SMS.Enabled {
		smsProvider = sms.NewTwilioProvider(
			cfg.SMS.Twilio.AccountSID,
			cfg.SMS.Twilio.AuthToken,
			cfg.SMS.Twilio.FromNumber,
		)
	}

	// Repositories
	profileRepo := mongodb.NewProfileRepository(db.Database)
	checkInRepo := mongodb.NewCheckInRepository(db.Database)
	contactRepo := mongodb.NewContactRepository(db.Database)

	// Services
	checkInService := services.NewCheckInService(profileRepo, checkInRepo, serviceCache, appLogger)
	contactService := services.NewContactService(contactRepo, appLogger)
	alertService := services.NewAlertService(mailProvider, smsProvider, appLogger)
	sweepService := services.NewSweepService(profileRepo, contactRepo, alertService, serviceCache, appLogger)

	// Handlers
	checkInHandler := handlers.NewCheckInHandler(checkInService)
	contactHandler := handlers.NewContactHandler(contactService)
	alertHandler := handlers.NewAlertHandler(alertService, sweepService)

	// Optional in-process sweep schedule
	if cfg.Scheduler.SweepCron != "" {
		cronRunner := cron.New()
		if err := jobs.InitCronJobs(cronRunner, cfg.Scheduler.SweepCron, sweepService, appLogger); err != nil {
			appLogger.Fatalf("Failed to initialize cron jobs: %v", err)
		}
		defer cronRunner.Stop()
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	auth := middleware.AuthRequired(cfg.Security.JWTSecret)
	cronAuth := middleware.CronAuthRequired(cfg.Security.CronSecret)

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupCheckInRoutes(v1, checkInHandler, auth)
		routes.SetupContactRoutes(v1, contactHandler, auth)
		routes.SetupAlertRoutes(v1, alertHandler, auth, cronAuth)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server stopped: %v", err)
	}
}
