package email

import (
	"context"
	"crm-admin/internal/config"
	"crm-admin/internal/pkg/apperrors"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type offerView struct {
	OfferID      int64
	Title        string
	CustomerName string
	OldStatus    string
	NewStatus    string
	Total        string
	ChangedBy    string
}

func testMessage(t *testing.T) Message {
	t.Helper()
	r, err := NewRenderer("CRM")
	require.NoError(t, err)

	msg := Message{To: []mail.Address{{Name: "Διαχειριστής", Address: "admin@example.gr"}}}
	require.NoError(t, r.Render(&msg, TemplateOfferStatusAdmin, offerView{
		OfferID: 3, Title: "Συντήρηση", CustomerName: "Αλφα Α.Ε.", OldStatus: "Απεσταλμένη", NewStatus: "Αποδεκτή", Total: "620.00",
	}))
	return msg
}

func TestRendererFillsSubjectAndBodies(t *testing.T) {
	msg := testMessage(t)

	assert.Equal(t, TemplateOfferStatusAdmin, msg.Template)
	assert.Equal(t, "Προσφορά «Συντήρηση»: Αποδεκτή", msg.Subject)
	assert.Contains(t, msg.Text, "Σύνολο με ΦΠΑ: 620.00 €")
	assert.Contains(t, msg.Text, "CRM")
	assert.NotContains(t, msg.Text, "Αλλαγή από")
	assert.Contains(t, msg.HTML, "<strong>Αποδεκτή</strong>")
	assert.Contains(t, msg.HTML, "<title>Προσφορά «Συντήρηση»: Αποδεκτή</title>")
}

func TestRendererEscapesHTML(t *testing.T) {
	r, err := NewRenderer("CRM")
	require.NoError(t, err)

	var msg Message
	require.NoError(t, r.Render(&msg, TemplateOfferStatusAdmin, offerView{Title: "<script>x</script>"}))
	assert.NotContains(t, msg.HTML, "<script>x</script>")
	assert.Contains(t, msg.Text, "<script>x</script>")
}

func TestRendererUnknownTemplate(t *testing.T) {
	r, err := NewRenderer("CRM")
	require.NoError(t, err)

	var msg Message
	assert.Error(t, r.Render(&msg, "missing", nil))
}

func TestRendererMissingFieldFails(t *testing.T) {
	r, err := NewRenderer("CRM")
	require.NoError(t, err)

	var msg Message
	assert.Error(t, r.Render(&msg, TemplateFormLinkIssued, struct{ URL string }{URL: "x"}))
}

func TestSendgridSenderPostsMail(t *testing.T) {
	var (
		gotAuth string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendgridSender(SendgridSettings{
		APIKey: "SG.test", Host: srv.URL, FromName: "CRM", FromAddress: "no-reply@example.gr", SubjectPrefix: "[CRM] ",
	}, logger)

	require.NoError(t, s.Send(context.Background(), testMessage(t)))
	assert.Equal(t, "Bearer SG.test", gotAuth)

	personalizations := gotBody["personalizations"].([]any)
	require.Len(t, personalizations, 1)
	p := personalizations[0].(map[string]any)
	assert.Equal(t, "[CRM] Προσφορά «Συντήρηση»: Αποδεκτή", p["subject"])
	assert.Len(t, gotBody["content"].([]any), 2)
}

func TestSendgridSenderReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	s := NewSendgridSender(SendgridSettings{APIKey: "bad", Host: srv.URL}, logger)
	err := s.Send(context.Background(), testMessage(t))
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestSendgridSenderSkipsEmptyMessage(t *testing.T) {
	s := NewSendgridSender(SendgridSettings{APIKey: "k", Host: "http://127.0.0.1:1"}, logger)
	assert.NoError(t, s.Send(context.Background(), Message{}))
}

func TestConsoleSenderKeepsMessages(t *testing.T) {
	s := NewConsoleSender(mail.Address{Address: "no-reply@example.gr"}, "[dev] ", logger)
	require.NoError(t, s.Send(context.Background(), testMessage(t)))
	require.NoError(t, s.Send(context.Background(), Message{}))

	sent := s.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "[dev] Προσφορά «Συντήρηση»: Αποδεκτή", sent[0].Subject)
}

func TestNewSender(t *testing.T) {
	s, err := NewSender(config.EmailConfig{Provider: "console"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleSender{}, s)

	s, err = NewSender(config.EmailConfig{Provider: "SendGrid", SendgridAPIKey: "k"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SendgridSender{}, s)

	_, err = NewSender(config.EmailConfig{Provider: "sendgrid"}, logger)
	assert.Error(t, err)

	_, err = NewSender(config.EmailConfig{Provider: "smtp"}, logger)
	assert.Error(t, err)
}
