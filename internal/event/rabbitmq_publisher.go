package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "crm-admin"

// RabbitMQTransport publishes events to a durable topic exchange.
type RabbitMQTransport struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger
}

var _ Transport = (*RabbitMQTransport)(nil)

func NewRabbitMQTransport(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQTransport, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	tempCh, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary channel for exchange declaration: %w", err)
	}
	defer tempCh.Close()

	if err := declareExchange(tempCh, exchangeName); err != nil {
		return nil, err
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQTransport{
		conn:         conn,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQTransport", "exchange", exchangeName),
	}, nil
}

func declareExchange(ch *amqp.Channel, exchangeName string) error {
	err := ch.ExchangeDeclare(
		exchangeName,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	return nil
}

func (t *RabbitMQTransport) Send(ctx context.Context, routingKey string, body []byte) error {
	logCtx := t.logger.With(slog.String("routingKey", routingKey))

	channel, err := t.conn.Channel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	logCtx.DebugContext(ctx, "Publishing message", "bodySize", len(body))

	err = channel.PublishWithContext(
		ctx,
		t.exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			AppId:        publisherAppID,
		},
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.InfoContext(ctx, "Successfully published message")
	return nil
}

// Connect dials the broker and logs when the connection drops.
func Connect(url string, logger *slog.Logger) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	logger.Info("RabbitMQ connection established.")

	go func() {
		errChan := conn.NotifyClose(make(chan *amqp.Error, 1))
		if closeErr, ok := <-errChan; ok && closeErr != nil {
			logger.Error("RabbitMQ connection closed unexpectedly", slog.Any("error", closeErr))
		}
	}()

	return conn, nil
}
