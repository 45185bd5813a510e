package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-admin/internal/api"
	"crm-admin/internal/batch"
	"crm-admin/internal/config"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/domain/formlink"
	"crm-admin/internal/domain/offer"
	"crm-admin/internal/event"
	"crm-admin/internal/infrastructure/cache"
	"crm-admin/internal/infrastructure/database/postgres"
	"crm-admin/internal/infrastructure/logging"
	"crm-admin/internal/notify"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title CRM Admin API
// @version 1.0
// @description Back-office API for customers, contacts, offers and customer form links.

// @contact.name CRM Support
// @contact.email support@crm-admin.gr

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	redisClient := initializeRedisClient(cfg, logger)
	defer closeRedisClient(redisClient, logger)

	publisher, closeEvents := initializeEvents(cfg, logger)
	defer closeEvents()

	services := initializeServices(cfg, dbPool, redisClient, publisher, logger)

	cronScheduler := startBatchJobs(cfg, services, logger)
	router := api.SetupRouter(ctx, services, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	if cfg.Server.Auth.Enabled && cfg.Server.Auth.JWTSecret == "" {
		logger.Error("Authentication is enabled but server.auth.jwtSecret is empty")
		os.Exit(1)
	}

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializeRedisClient returns nil when Redis is disabled; form links are then read from Postgres only.
func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, form link cache off.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		os.Exit(1)
	}

	logger.Info("Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

// initializeEvents publishes to RabbitMQ when it is enabled, where the notifier
// process picks the events up. Otherwise notifications are sent in-process.
func initializeEvents(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, func()) {
	if cfg.RabbitMQ.Enabled {
		conn, err := event.Connect(cfg.RabbitMQ.AMQPURL(), logger)
		if err != nil {
			logger.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		transport, err := event.NewRabbitMQTransport(conn, cfg.RabbitMQ.ExchangeName, logger)
		if err != nil {
			logger.Error("Failed to set up RabbitMQ transport", "error", err)
			_ = conn.Close()
			os.Exit(1)
		}
		return event.NewPublisher(transport, logger), func() { closeRabbitMQ(conn, logger) }
	}

	handler, err := notify.NewHandlerFromConfig(cfg.Email, logger)
	if err != nil {
		logger.Error("Failed to set up email notifications", "error", err)
		os.Exit(1)
	}
	transport := event.NewInProcessTransport(handler.Handle, logger)
	logger.Info("RabbitMQ disabled, delivering notifications in-process.")
	return event.NewPublisher(transport, logger), func() {
		logger.Info("Waiting for in-flight notifications...")
		transport.Wait()
	}
}

func closeRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.Error("Failed to close RabbitMQ connection", "error", err)
	}
}

func initializeServices(cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, pub event.EventPublisher, logger *slog.Logger) api.Services {
	logger.Info("Initializing application components...")
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	contactRepo := postgres.NewContactRepository(dbPool, logger)
	offerRepo := postgres.NewOfferRepository(dbPool, logger)
	linkRepo := postgres.NewFormLinkRepository(dbPool, logger)
	tx := postgres.NewTransactor(dbPool, logger)

	detector := customer.NewDuplicateDetector(cfg.Duplicates.Threshold, cfg.Duplicates.MaxResults)
	customerService := customer.NewCustomerService(customerRepo, tx, pub, detector, logger)

	var linkCache formlink.Cache
	if redisClient != nil && cfg.Forms.CacheEnabled {
		linkCache = cache.NewRedisFormLinkCache(redisClient, logger)
	}
	settings := formlink.Settings{
		PublicBaseURL: cfg.Forms.PublicBaseURL,
		DefaultTTL:    cfg.Forms.DefaultTTL,
		MaxTTL:        cfg.Forms.MaxTTL,
		CacheTTL:      cfg.Forms.CacheTTL,
	}

	return api.Services{
		Customers: customerService,
		Contacts:  contact.NewContactService(contactRepo, customerRepo, tx, logger),
		Offers:    offer.NewOfferService(offerRepo, customerRepo, pub, logger),
		FormLinks: formlink.NewFormLinkService(linkRepo, customerRepo, contactRepo, customerService, tx, linkCache, pub, settings, logger),
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
		}
		triggerReason = "server exited"
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, services api.Services, logger *slog.Logger) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	jobs := []struct {
		spec string
		def  string
		job  batch.Job
	}{
		{cfg.Batch.FormLinkExpirySchedule, "*/15 * * * *", batch.NewFormLinkExpiryJob(services.FormLinks, logger)},
		{cfg.Batch.OfferExpirySchedule, "0 3 * * *", batch.NewOfferExpiryJob(services.Offers, logger)},
	}

	for _, j := range jobs {
		spec := j.spec
		if spec == "" {
			spec = j.def
			logger.Warn("Batch schedule not configured, using default", "job", j.job.Name(), "schedule", spec)
		}
		jobID, err := batch.Schedule(c, spec, cfg.Batch.JobTimeout, j.job, logger)
		if err != nil {
			logger.Error("Failed to schedule batch job", "job", j.job.Name(), "schedule", spec, slog.Any("error", err))
			continue
		}
		logger.Info("Scheduled batch job", "job", j.job.Name(), "schedule", spec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
