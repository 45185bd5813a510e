package offer

import (
	"crm-admin/internal/pkg/apperrors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = []Status{StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired, StatusCancelled}

var allowedTransitions = map[Status]map[Status]bool{
	StatusDraft: {
		StatusSent:      true,
		StatusCancelled: true,
	},
	StatusSent: {
		StatusAccepted:  true,
		StatusRejected:  true,
		StatusExpired:   true,
		StatusCancelled: true,
	},
}

var ErrInvalidTransition = fmt.Errorf("%w: offer status transition not allowed", apperrors.ErrConflict)

var ErrNotEditable = fmt.Errorf("%w: only draft offers can be edited", apperrors.ErrConflict)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

func (s Status) IsFinal() bool {
	return len(allowedTransitions[s]) == 0
}

func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

type Details struct {
	Title       string
	Description string
	Amount      decimal.Decimal
	VATRate     decimal.Decimal
	ValidUntil  *time.Time
	Notes       string
}

type Offer struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	Details
	Status    Status
	SentAt    *time.Time
	DecidedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

var hundred = decimal.NewFromInt(100)

// DefaultVATRate is the standard Greek ΦΠΑ rate.
var DefaultVATRate = decimal.RequireFromString("0.24")

func NewOffer(customerID int64, d Details) *Offer {
	now := time.Now()
	return &Offer{
		CustomerID: customerID,
		Details:    d.Normalize(),
		Status:     StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (d Details) Normalize() Details {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Notes = strings.TrimSpace(d.Notes)
	d.Amount = d.Amount.Round(2)
	return d
}

func (d Details) Validate() error {
	if d.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}
	if !d.Amount.IsPositive() {
		return apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if d.VATRate.IsNegative() || d.VATRate.GreaterThan(decimal.NewFromInt(1)) {
		return apperrors.NewValidationError("vatRate", "VAT rate must be between 0 and 1")
	}
	return nil
}

// VATAmount is the tax on Amount rounded to cents.
func (o *Offer) VATAmount() decimal.Decimal {
	return o.Amount.Mul(o.VATRate).Round(2)
}

func (o *Offer) Total() decimal.Decimal {
	return o.Amount.Add(o.VATAmount())
}

// VATPercent renders the rate as a percentage, e.g. 0.24 -> 24.
func (o *Offer) VATPercent() decimal.Decimal {
	return o.VATRate.Mul(hundred)
}

// TransitionTo moves the offer to status `to`, stamping SentAt or DecidedAt.
func (o *Offer) TransitionTo(to Status, at time.Time) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	o.UpdatedAt = at
	switch to {
	case StatusSent:
		o.SentAt = &at
	case StatusAccepted, StatusRejected, StatusExpired, StatusCancelled:
		o.DecidedAt = &at
	}
	return nil
}

func (o *Offer) IsOverdue(now time.Time) bool {
	return o.Status == StatusSent && o.ValidUntil != nil && o.ValidUntil.Before(now)
}

type ListFilter struct {
	CustomerID *int64
	Status     *Status
	Limit      int
	Offset     int
}

func (f ListFilter) Sanitize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

type Page struct {
	Items []*Offer
	Total int
}
