// Package email renders Greek notification templates and delivers them
// through SendGrid or, in development, the process log.
package email

import (
	"context"
	"crm-admin/internal/config"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
)

const (
	ProviderSendgrid = "sendgrid"
	ProviderConsole  = "console"
)

type Message struct {
	To       []mail.Address
	Subject  string
	Template string
	Text     string
	HTML     string
}

func (m Message) HasRecipients() bool { return len(m.To) > 0 }
func (m Message) HasContent() bool    { return m.Text != "" || m.HTML != "" }

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender picks the delivery backend named by cfg.Provider.
func NewSender(cfg config.EmailConfig, logger *slog.Logger) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, fmt.Errorf("email provider %q requires sendgridApiKey", ProviderSendgrid)
		}
		return NewSendgridSender(SendgridSettings{
			APIKey:        cfg.SendgridAPIKey,
			FromName:      cfg.FromName,
			FromAddress:   cfg.FromAddress,
			SubjectPrefix: cfg.SubjectPrefix,
		}, logger), nil
	case ProviderConsole, "":
		return NewConsoleSender(mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}, cfg.SubjectPrefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
