package event

import (
	"context"
	"log/slog"
	"sync"
)

// MessageHandler processes one encoded event.
type MessageHandler func(ctx context.Context, routingKey string, body []byte) error

// InProcessTransport hands events to a local handler on a background
// goroutine. It is used when no broker is configured.
type InProcessTransport struct {
	handler MessageHandler
	logger  *slog.Logger
	wg      sync.WaitGroup
}

var _ Transport = (*InProcessTransport)(nil)

func NewInProcessTransport(handler MessageHandler, logger *slog.Logger) *InProcessTransport {
	if handler == nil {
		panic("in-process handler cannot be nil")
	}
	return &InProcessTransport{
		handler: handler,
		logger:  logger.With("component", "InProcessTransport"),
	}
}

func (t *InProcessTransport) Send(ctx context.Context, routingKey string, body []byte) error {
	msg := make([]byte, len(body))
	copy(msg, body)

	// The request context ends with the HTTP response; handling must outlive it.
	handlerCtx := context.WithoutCancel(ctx)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.handler(handlerCtx, routingKey, msg); err != nil {
			t.logger.ErrorContext(handlerCtx, "In-process event handler failed", slog.String("routingKey", routingKey), slog.Any("error", err))
		}
	}()
	return nil
}

// Wait blocks until every dispatched event has been handled.
func (t *InProcessTransport) Wait() {
	t.wg.Wait()
}
