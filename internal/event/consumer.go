package event

import (
	"context"
	"crm-admin/internal/infrastructure/monitoring"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrUnknownRoutingKey is returned by handlers for messages they do not understand.
// Such deliveries are rejected instead of nacked.
var ErrUnknownRoutingKey = errors.New("unknown routing key")

type DeliveryHandler func(ctx context.Context, d amqp.Delivery)

type Consumer struct {
	channel      *amqp.Channel
	exchangeName string
	queueName    string
	consumerTag  string
	handler      DeliveryHandler
	logger       *slog.Logger
	wg           *sync.WaitGroup
	cancelFunc   context.CancelFunc
}

func NewConsumer(
	conn *amqp.Connection,
	exchangeName, queueName, consumerTag string,
	routingKeys []string,
	handler DeliveryHandler,
	logger *slog.Logger,
) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	logger.Info("Declaring exchange", "name", exchangeName, "type", amqp.ExchangeTopic)
	if err := declareExchange(ch, exchangeName); err != nil {
		_ = ch.Close()
		return nil, err
	}

	logger.Info("Declaring queue", "name", queueName)
	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue '%s': %w", queueName, err)
	}

	for _, key := range routingKeys {
		logger.Info("Binding queue", "queue", q.Name, "exchange", exchangeName, "key", key)
		if err := ch.QueueBind(q.Name, key, exchangeName, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("failed to bind queue '%s' with key '%s': %w", q.Name, key, err)
		}
	}

	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &Consumer{
		channel:      ch,
		exchangeName: exchangeName,
		queueName:    q.Name,
		consumerTag:  consumerTag,
		handler:      handler,
		logger:       logger.With("component", "consumer", "queue", q.Name),
		wg:           new(sync.WaitGroup),
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("Starting message consumption...")
	deliveries, err := c.channel.Consume(c.queueName, c.consumerTag, false, false, false, false, nil)
	if err != nil {
		_ = c.channel.Close()
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-loopCtx.Done():
				c.logger.Info("Consumer context cancelled. Exiting consumption loop.")
				return
			case d, ok := <-deliveries:
				if !ok {
					c.logger.Warn("RabbitMQ delivery channel closed unexpectedly.")
					return
				}
				c.handler(loopCtx, d)
			}
		}
	}()

	return nil
}

func (c *Consumer) Stop() {
	if c.cancelFunc == nil {
		c.logger.Warn("Consumer stop called but cancelFunc is nil (maybe never started?)")
		return
	}
	c.logger.Info("Stopping consumer...")
	c.cancelFunc()

	if err := c.channel.Cancel(c.consumerTag, false); err != nil {
		c.logger.Warn("Failed to cancel consumer tag", "tag", c.consumerTag, "error", err)
	}

	c.wg.Wait()

	if err := c.channel.Close(); err != nil {
		c.logger.Error("Failed to close consumer channel", "error", err)
	} else {
		c.logger.Info("Consumer channel closed.")
	}
}

// AckingHandler adapts a MessageHandler to AMQP deliveries: success acks,
// unknown routing keys are rejected and any other failure is nacked without requeue.
func AckingHandler(handler MessageHandler, logger *slog.Logger) DeliveryHandler {
	return func(ctx context.Context, d amqp.Delivery) {
		logCtx := logger.With(slog.Uint64("deliveryTag", d.DeliveryTag), slog.String("routingKey", d.RoutingKey))

		err := handler(ctx, d.RoutingKey, d.Body)
		switch {
		case err == nil:
			monitoring.RecordEventConsumed(d.RoutingKey, "ack")
			if ackErr := d.Ack(false); ackErr != nil {
				logCtx.ErrorContext(ctx, "Failed to acknowledge message after successful processing", "error", ackErr)
				return
			}
			logCtx.InfoContext(ctx, "Successfully processed and acknowledged message")
		case errors.Is(err, ErrUnknownRoutingKey):
			monitoring.RecordEventConsumed(d.RoutingKey, "reject")
			logCtx.WarnContext(ctx, "Received message with unknown routing key. Discarding.")
			_ = d.Reject(false)
		default:
			monitoring.RecordEventConsumed(d.RoutingKey, "nack")
			logCtx.ErrorContext(ctx, "Failed to process message", "error", err)
			_ = d.Nack(false, false)
		}
	}
}
