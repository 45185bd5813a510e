// Command notifier consumes CRM events from RabbitMQ and sends the matching emails.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-admin/internal/config"
	"crm-admin/internal/event"
	"crm-admin/internal/infrastructure/logging"
	"crm-admin/internal/notify"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

var routingKeys = []string{
	event.RoutingKeyFormLinkIssued,
	event.RoutingKeyFormLinkSubmitted,
	event.RoutingKeyOfferStatusChanged,
}

func main() {
	cfg, logger := initializeConfigAndLogger()
	ctx, cancel := setupSignalHandling()
	defer cancel()

	handler, err := notify.NewHandlerFromConfig(cfg.Email, logger)
	if err != nil {
		logger.Error("Failed to set up email notifications", slog.Any("error", err))
		os.Exit(1)
	}

	rabbitConn, err := event.Connect(cfg.RabbitMQ.AMQPURL(), logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeRabbitMQ(rabbitConn, logger)

	server := startMetricsServer(cfg.Metrics, logger, cancel)

	consumer, err := event.NewConsumer(
		rabbitConn,
		cfg.RabbitMQ.ExchangeName,
		cfg.RabbitMQ.QueueName,
		cfg.RabbitMQ.ConsumerTag,
		routingKeys,
		event.AckingHandler(handler.Handle, logger),
		logger,
	)
	if err != nil {
		logger.Error("Failed to create RabbitMQ consumer", slog.Any("error", err))
		os.Exit(1)
	}
	if err := consumer.Start(ctx); err != nil {
		logger.Error("Failed to start RabbitMQ consumer", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Consumer started. Waiting for events or shutdown signal...")

	<-ctx.Done()
	logger.Info("Shutdown signal received. Initiating graceful shutdown...")
	consumer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down metrics server", slog.Any("error", err))
	}
	logger.Info("Notifier shut down gracefully.")
}

func initializeConfigAndLogger() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.NewLogger(cfg.Logger).With("service", "notifier")
	slog.SetDefault(logger)
	logger.Info("Configuration loaded successfully")
	return cfg, logger
}

func setupSignalHandling() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func startMetricsServer(cfg config.MetricsConfig, logger *slog.Logger, cancel context.CancelFunc) *http.Server {
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Serving Prometheus metrics", "addr", server.Addr, "path", path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", slog.Any("error", err))
			cancel()
		}
	}()
	return server
}

func closeRabbitMQ(rabbitConn *amqp.Connection, logger *slog.Logger) {
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.Error("Error closing RabbitMQ connection", slog.Any("error", err))
	}
}
