package email

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
)

// ConsoleSender writes messages to the log instead of delivering them and keeps
// a copy of everything it was asked to send.
type ConsoleSender struct {
	from       mail.Address
	subjPrefix string
	logger     *slog.Logger

	mu   sync.Mutex
	sent []Message
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(from mail.Address, subjPrefix string, logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{
		from:       from,
		subjPrefix: subjPrefix,
		logger:     logger.With("component", "ConsoleSender"),
	}
}

func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	if !msg.HasRecipients() || !msg.HasContent() {
		return nil
	}
	msg.Subject = s.subjPrefix + msg.Subject

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Email (console)",
		slog.String("from", s.from.String()),
		slog.String("to", joinAddresses(msg.To)),
		slog.String("subject", msg.Subject),
		slog.String("template", msg.Template),
		slog.String("body", msg.Text),
	)
	return nil
}

func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}

func joinAddresses(addrs []mail.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}
