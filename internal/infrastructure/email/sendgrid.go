package email

import (
	"context"
	"crm-admin/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	DefaultSendgridHost = "https://api.sendgrid.com"
	sendgridEndpoint    = "/v3/mail/send"
)

type SendgridSettings struct {
	APIKey        string
	Host          string
	FromName      string
	FromAddress   string
	SubjectPrefix string
}

type SendgridSender struct {
	key        string
	host       string
	from       *sgmail.Email
	subjPrefix string
	logger     *slog.Logger
}

var _ Sender = (*SendgridSender)(nil)

func NewSendgridSender(settings SendgridSettings, logger *slog.Logger) *SendgridSender {
	host := settings.Host
	if host == "" {
		host = DefaultSendgridHost
	}
	return &SendgridSender{
		key:        settings.APIKey,
		host:       host,
		from:       sgmail.NewEmail(settings.FromName, settings.FromAddress),
		subjPrefix: settings.SubjectPrefix,
		logger:     logger.With("component", "SendgridSender"),
	}
}

func (s *SendgridSender) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgEmail(to))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	if msg.Text != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return m
}

func sgEmail(addr mail.Address) *sgmail.Email {
	return sgmail.NewEmail(addr.Name, addr.Address)
}

func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	if !msg.HasRecipients() || !msg.HasContent() {
		s.logger.WarnContext(ctx, "Skipping email without recipients or content", slog.String("template", msg.Template))
		return nil
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Sending email failed", slog.String("template", msg.Template), slog.Any("error", err))
		return apperrors.WrapExternalError(err, "SENDGRID", "sending email failed")
	}
	if res.StatusCode >= http.StatusBadRequest {
		s.logger.ErrorContext(ctx, "SendGrid rejected email",
			slog.String("template", msg.Template), slog.Int("status", res.StatusCode), slog.String("body", res.Body))
		return apperrors.WrapExternalError(fmt.Errorf("status %d", res.StatusCode), "SENDGRID", "email rejected by provider")
	}

	s.logger.InfoContext(ctx, "Email sent", slog.String("template", msg.Template), slog.Int("recipients", len(msg.To)))
	return nil
}
