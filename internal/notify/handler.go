// Package notify turns domain events into notification emails.
package notify

import (
	"context"
	"crm-admin/internal/config"
	"crm-admin/internal/event"
	"crm-admin/internal/infrastructure/email"
	"crm-admin/internal/infrastructure/monitoring"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	_ "time/tzdata"
)

var offerStatusLabels = map[string]string{
	"draft":     "Πρόχειρη",
	"sent":      "Απεσταλμένη",
	"accepted":  "Αποδεκτή",
	"rejected":  "Απορρίφθηκε",
	"expired":   "Έληξε",
	"cancelled": "Ακυρώθηκε",
}

const dateLayout = "02/01/2006 15:04"

type formLinkIssuedView struct {
	RecipientName string
	CustomerName  string
	URL           string
	ExpiresAt     string
}

type formSubmittedView struct {
	CustomerID         int64
	CompanyName        string
	TaxID              string
	RecipientEmail     string
	NewCustomer        bool
	ContactsAdded      int
	PossibleDuplicates int
}

type offerStatusView struct {
	OfferID      int64
	Title        string
	CustomerName string
	OldStatus    string
	NewStatus    string
	Total        string
	ChangedBy    string
}

type Handler struct {
	renderer   *email.Renderer
	sender     email.Sender
	adminEmail string
	location   *time.Location
	logger     *slog.Logger
}

// NewHandler builds a handler. An empty adminEmail disables admin notifications.
func NewHandler(renderer *email.Renderer, sender email.Sender, adminEmail string, logger *slog.Logger) *Handler {
	if renderer == nil || sender == nil {
		panic("notify handler needs a renderer and a sender")
	}
	loc, err := time.LoadLocation("Europe/Athens")
	if err != nil {
		loc = time.UTC
	}
	return &Handler{
		renderer:   renderer,
		sender:     sender,
		adminEmail: strings.TrimSpace(adminEmail),
		location:   loc,
		logger:     logger.With("component", "notifyHandler"),
	}
}

// NewHandlerFromConfig loads the templates and the configured email backend.
func NewHandlerFromConfig(cfg config.EmailConfig, logger *slog.Logger) (*Handler, error) {
	renderer, err := email.NewRenderer(cfg.FromName)
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	sender, err := email.NewSender(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create email sender: %w", err)
	}
	return NewHandler(renderer, sender, cfg.AdminEmail, logger), nil
}

// Handle satisfies event.MessageHandler.
func (h *Handler) Handle(ctx context.Context, routingKey string, body []byte) error {
	log := h.logger.With(slog.String("routingKey", routingKey))

	switch routingKey {
	case event.RoutingKeyFormLinkIssued:
		var evt event.FormLinkIssuedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			return fmt.Errorf("decoding %s: %w", routingKey, err)
		}
		return h.formLinkIssued(ctx, evt)
	case event.RoutingKeyFormLinkSubmitted:
		var evt event.FormLinkSubmittedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			return fmt.Errorf("decoding %s: %w", routingKey, err)
		}
		return h.formSubmitted(ctx, evt)
	case event.RoutingKeyOfferStatusChanged:
		var evt event.OfferStatusChangedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			return fmt.Errorf("decoding %s: %w", routingKey, err)
		}
		return h.offerStatusChanged(ctx, evt)
	case event.RoutingKeyCustomerCreated, event.RoutingKeyCustomerUpdated:
		log.DebugContext(ctx, "No notification for customer event")
		return nil
	default:
		return fmt.Errorf("%w: %s", event.ErrUnknownRoutingKey, routingKey)
	}
}

func (h *Handler) formLinkIssued(ctx context.Context, evt event.FormLinkIssuedEvent) error {
	msg := email.Message{To: []mail.Address{{Name: evt.RecipientName, Address: evt.RecipientEmail}}}
	view := formLinkIssuedView{
		RecipientName: evt.RecipientName,
		CustomerName:  evt.CustomerName,
		URL:           evt.URL,
		ExpiresAt:     evt.ExpiresAt.In(h.location).Format(dateLayout),
	}
	return h.deliver(ctx, &msg, email.TemplateFormLinkIssued, view)
}

func (h *Handler) formSubmitted(ctx context.Context, evt event.FormLinkSubmittedEvent) error {
	if h.adminEmail == "" {
		h.logger.InfoContext(ctx, "Admin email not configured, skipping submission notification", slog.Int64("linkID", evt.LinkID))
		return nil
	}
	msg := email.Message{To: []mail.Address{{Address: h.adminEmail}}}
	view := formSubmittedView{
		CustomerID:         evt.CustomerID,
		CompanyName:        evt.CompanyName,
		TaxID:              evt.TaxID,
		RecipientEmail:     evt.RecipientEmail,
		NewCustomer:        evt.NewCustomer,
		ContactsAdded:      evt.ContactsAdded,
		PossibleDuplicates: evt.PossibleDupes,
	}
	return h.deliver(ctx, &msg, email.TemplateFormSubmittedAdmin, view)
}

func (h *Handler) offerStatusChanged(ctx context.Context, evt event.OfferStatusChangedEvent) error {
	if h.adminEmail == "" {
		h.logger.InfoContext(ctx, "Admin email not configured, skipping offer notification", slog.Int64("offerID", evt.OfferID))
		return nil
	}
	msg := email.Message{To: []mail.Address{{Address: h.adminEmail}}}
	view := offerStatusView{
		OfferID:      evt.OfferID,
		Title:        evt.Title,
		CustomerName: evt.CustomerName,
		OldStatus:    statusLabel(evt.OldStatus),
		NewStatus:    statusLabel(evt.NewStatus),
		Total:        evt.Total,
		ChangedBy:    evt.ChangedBy,
	}
	return h.deliver(ctx, &msg, email.TemplateOfferStatusAdmin, view)
}

func (h *Handler) deliver(ctx context.Context, msg *email.Message, template string, data any) error {
	log := h.logger.With(slog.String("template", template))

	if err := h.renderer.Render(msg, template, data); err != nil {
		monitoring.RecordEmailSent(template, "render_error")
		log.ErrorContext(ctx, "Failed to render email", slog.Any("error", err))
		return err
	}
	if err := h.sender.Send(ctx, *msg); err != nil {
		monitoring.RecordEmailSent(template, "failed")
		return fmt.Errorf("sending %s email: %w", template, err)
	}

	monitoring.RecordEmailSent(template, "sent")
	log.InfoContext(ctx, "Notification email sent", slog.Int("recipients", len(msg.To)))
	return nil
}

func statusLabel(s string) string {
	if l, ok := offerStatusLabels[s]; ok {
		return l
	}
	return s
}
