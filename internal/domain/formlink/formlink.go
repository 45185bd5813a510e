package formlink

import (
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusExpired   Status = "expired"
	StatusRevoked   Status = "revoked"
)

var AllStatuses = []Status{StatusPending, StatusSubmitted, StatusExpired, StatusRevoked}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

var (
	ErrLinkExpired = fmt.Errorf("%w: form link has expired", apperrors.ErrGone)

	ErrLinkUnavailable = fmt.Errorf("%w: form link is no longer available", apperrors.ErrGone)
)

const (
	DefaultTTL = 7 * 24 * time.Hour
	MaxTTL     = 30 * 24 * time.Hour

	// maxContactsPerSubmission bounds what an unauthenticated form may insert.
	maxContactsPerSubmission = 10
)

type FormLink struct {
	ID             int64      `msgpack:"id"`
	Token          string     `msgpack:"token"`
	CustomerID     *int64     `msgpack:"customerId"`
	RecipientEmail string     `msgpack:"recipientEmail"`
	RecipientName  string     `msgpack:"recipientName"`
	Status         Status     `msgpack:"status"`
	ExpiresAt      time.Time  `msgpack:"expiresAt"`
	SubmittedAt    *time.Time `msgpack:"submittedAt"`
	CreatedBy      string     `msgpack:"createdBy"`
	CreatedAt      time.Time  `msgpack:"createdAt"`
	UpdatedAt      time.Time  `msgpack:"updatedAt"`
}

func (l *FormLink) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// CheckUsable reports why a link cannot accept a submission, if it cannot.
func (l *FormLink) CheckUsable(now time.Time) error {
	switch {
	case l.Status == StatusExpired:
		return ErrLinkExpired
	case l.Status != StatusPending:
		return ErrLinkUnavailable
	case l.IsExpired(now):
		return ErrLinkExpired
	}
	return nil
}

type IssueInput struct {
	CustomerID     *int64
	RecipientEmail string
	RecipientName  string
	TTL            time.Duration
	CreatedBy      string
}

func (in IssueInput) Normalize() IssueInput {
	in.RecipientEmail = strings.ToLower(strings.TrimSpace(in.RecipientEmail))
	in.RecipientName = strings.TrimSpace(in.RecipientName)
	return in
}

func (in IssueInput) Validate(maxTTL time.Duration) error {
	if in.RecipientEmail == "" || !strings.Contains(in.RecipientEmail, "@") {
		return apperrors.NewValidationError("recipientEmail", "a valid recipient e-mail is required")
	}
	if in.TTL < 0 {
		return apperrors.NewValidationError("ttl", "ttl cannot be negative")
	}
	if in.TTL > maxTTL {
		return apperrors.NewValidationError("ttl", fmt.Sprintf("ttl cannot exceed %s", maxTTL))
	}
	return nil
}

// Submission is what the external customer fills in on the public form.
type Submission struct {
	Customer customer.Details
	Contacts []contact.Details
}

func (s Submission) Normalize() Submission {
	s.Customer = s.Customer.Normalize()
	contacts := make([]contact.Details, 0, len(s.Contacts))
	for _, c := range s.Contacts {
		contacts = append(contacts, c.Normalize())
	}
	s.Contacts = contacts
	return s
}

func (s Submission) Validate() error {
	if err := s.Customer.Validate(); err != nil {
		return err
	}
	if len(s.Contacts) > maxContactsPerSubmission {
		return apperrors.NewValidationError("contacts", fmt.Sprintf("at most %d contacts can be submitted", maxContactsPerSubmission))
	}
	for i, c := range s.Contacts {
		if err := c.Validate(); err != nil {
			var vErr *apperrors.ValidationError
			if errors.As(err, &vErr) {
				return apperrors.NewValidationError(fmt.Sprintf("contacts[%d].%s", i, vErr.Field), vErr.Message)
			}
			return err
		}
	}
	return nil
}

// Resolution is what the public form is rendered from.
type Resolution struct {
	Link     *FormLink
	Customer *customer.Customer
}

type SubmitResult struct {
	Link          *FormLink
	Customer      *customer.Customer
	NewCustomer   bool
	ContactsAdded int
	Duplicates    []customer.DuplicateMatch
}

type ListFilter struct {
	Status     *Status
	CustomerID *int64
	Limit      int
	Offset     int
}

func (f ListFilter) Sanitize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = customer.DefaultPageSize
	}
	if f.Limit > customer.MaxPageSize {
		f.Limit = customer.MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

type Page struct {
	Items []*FormLink
	Total int
}
