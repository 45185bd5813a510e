package dto

import (
	"time"
	_ "time/tzdata"

	"crm-admin/internal/domain/offer"
	"crm-admin/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Offers are valid through the end of the given day, Greek time.
var businessLocation = mustLoadLocation("Europe/Athens")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

type OfferRequest struct {
	CustomerID  int64   `json:"customerId" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"notblank,max=255"`
	Description string  `json:"description"`
	Amount      string  `json:"amount" validate:"required,numeric"`
	VATRate     *string `json:"vatRate" validate:"omitempty,numeric"`
	ValidUntil  string  `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Notes       string  `json:"notes"`
}

// UpdateOfferRequest is OfferRequest without the owning customer, which cannot change.
type UpdateOfferRequest struct {
	Title       string  `json:"title" validate:"notblank,max=255"`
	Description string  `json:"description"`
	Amount      string  `json:"amount" validate:"required,numeric"`
	VATRate     *string `json:"vatRate" validate:"omitempty,numeric"`
	ValidUntil  string  `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Notes       string  `json:"notes"`
}

func (r OfferRequest) ToDetails() (offer.Details, error) {
	return UpdateOfferRequest{
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		VATRate:     r.VATRate,
		ValidUntil:  r.ValidUntil,
		Notes:       r.Notes,
	}.ToDetails()
}

func (r UpdateOfferRequest) ToDetails() (offer.Details, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return offer.Details{}, apperrors.NewValidationError("amount", "amount must be a decimal number")
	}
	vat := offer.DefaultVATRate
	if r.VATRate != nil {
		if vat, err = decimal.NewFromString(*r.VATRate); err != nil {
			return offer.Details{}, apperrors.NewValidationError("vatRate", "vatRate must be a decimal number")
		}
	}
	d := offer.Details{
		Title:       r.Title,
		Description: r.Description,
		Amount:      amount,
		VATRate:     vat,
		Notes:       r.Notes,
	}
	if r.ValidUntil != "" {
		day, err := time.ParseInLocation(dateLayout, r.ValidUntil, businessLocation)
		if err != nil {
			return offer.Details{}, apperrors.NewValidationError("validUntil", "validUntil must use YYYY-MM-DD")
		}
		end := day.AddDate(0, 0, 1).Add(-time.Second)
		d.ValidUntil = &end
	}
	return d, nil
}

type ChangeOfferStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent accepted rejected expired cancelled"`
}

type OfferResponse struct {
	ID           int64      `json:"id"`
	CustomerID   int64      `json:"customerId"`
	CustomerName string     `json:"customerName,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Amount       string     `json:"amount"`
	VATRate      string     `json:"vatRate"`
	VATAmount    string     `json:"vatAmount"`
	Total        string     `json:"total"`
	Status       string     `json:"status"`
	ValidUntil   *string    `json:"validUntil,omitempty"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func NewOfferResponse(o *offer.Offer) OfferResponse {
	if o == nil {
		return OfferResponse{}
	}
	var validUntil *string
	if o.ValidUntil != nil {
		s := o.ValidUntil.In(businessLocation).Format(dateLayout)
		validUntil = &s
	}
	return OfferResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Title:        o.Title,
		Description:  o.Description,
		Amount:       o.Amount.StringFixed(2),
		VATRate:      o.VATRate.String(),
		VATAmount:    o.VATAmount().StringFixed(2),
		Total:        o.Total().StringFixed(2),
		Status:       string(o.Status),
		ValidUntil:   validUntil,
		SentAt:       o.SentAt,
		DecidedAt:    o.DecidedAt,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func NewOfferStatusCounts(counts map[offer.Status]int) StatusCountsResponse {
	resp := StatusCountsResponse{Counts: make(map[string]int, len(offer.AllStatuses))}
	for _, st := range offer.AllStatuses {
		resp.Counts[string(st)] = counts[st]
		resp.Total += counts[st]
	}
	return resp
}
