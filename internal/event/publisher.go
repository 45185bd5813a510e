package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error
	PublishOfferStatusChanged(ctx context.Context, event OfferStatusChangedEvent) error
	PublishFormLinkIssued(ctx context.Context, event FormLinkIssuedEvent) error
	PublishFormLinkSubmitted(ctx context.Context, event FormLinkSubmittedEvent) error
}

// Transport delivers an encoded event body under a routing key.
type Transport interface {
	Send(ctx context.Context, routingKey string, body []byte) error
}

type Publisher struct {
	transport Transport
	logger    *slog.Logger
}

var _ EventPublisher = (*Publisher)(nil)

func NewPublisher(transport Transport, logger *slog.Logger) *Publisher {
	if transport == nil {
		panic("event transport cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Publisher{
		transport: transport,
		logger:    logger.With("component", "EventPublisher"),
	}
}

func (p *Publisher) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.String("routingKey", routingKey), slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.transport.Send(ctx, routingKey, body)
}

func (p *Publisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return p.publish(ctx, RoutingKeyCustomerCreated, event)
}

func (p *Publisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	return p.publish(ctx, RoutingKeyCustomerUpdated, event)
}

func (p *Publisher) PublishOfferStatusChanged(ctx context.Context, event OfferStatusChangedEvent) error {
	return p.publish(ctx, RoutingKeyOfferStatusChanged, event)
}

func (p *Publisher) PublishFormLinkIssued(ctx context.Context, event FormLinkIssuedEvent) error {
	return p.publish(ctx, RoutingKeyFormLinkIssued, event)
}

func (p *Publisher) PublishFormLinkSubmitted(ctx context.Context, event FormLinkSubmittedEvent) error {
	return p.publish(ctx, RoutingKeyFormLinkSubmitted, event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

var _ EventPublisher = NopPublisher{}

func (NopPublisher) PublishCustomerCreated(context.Context, CustomerCreatedEvent) error { return nil }
func (NopPublisher) PublishCustomerUpdated(context.Context, CustomerUpdatedEvent) error { return nil }
func (NopPublisher) PublishOfferStatusChanged(context.Context, OfferStatusChangedEvent) error {
	return nil
}
func (NopPublisher) PublishFormLinkIssued(context.Context, FormLinkIssuedEvent) error { return nil }
func (NopPublisher) PublishFormLinkSubmitted(context.Context, FormLinkSubmittedEvent) error {
	return nil
}
