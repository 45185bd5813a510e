package dto

import (
	"time"

	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/formlink"
)

type IssueFormLinkRequest struct {
	CustomerID     *int64 `json:"customerId" validate:"omitempty,gt=0"`
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	RecipientName  string `json:"recipientName" validate:"max=255"`
	// TTLHours of zero selects the configured default. The upper bound is the
	// 30-day hard maximum; a lower configured maximum is enforced by the service.
	TTLHours int `json:"ttlHours" validate:"gte=0,lte=720"`
}

func (r IssueFormLinkRequest) ToInput(createdBy string) formlink.IssueInput {
	return formlink.IssueInput{
		CustomerID:     r.CustomerID,
		RecipientEmail: r.RecipientEmail,
		RecipientName:  r.RecipientName,
		TTL:            time.Duration(r.TTLHours) * time.Hour,
		CreatedBy:      createdBy,
	}
}

type FormLinkResponse struct {
	ID             int64      `json:"id"`
	Token          string     `json:"token"`
	URL            string     `json:"url"`
	CustomerID     *int64     `json:"customerId,omitempty"`
	RecipientEmail string     `json:"recipientEmail"`
	RecipientName  string     `json:"recipientName,omitempty"`
	Status         string     `json:"status"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func NewFormLinkResponse(l *formlink.FormLink, url string) FormLinkResponse {
	if l == nil {
		return FormLinkResponse{}
	}
	return FormLinkResponse{
		ID:             l.ID,
		Token:          l.Token,
		URL:            url,
		CustomerID:     l.CustomerID,
		RecipientEmail: l.RecipientEmail,
		RecipientName:  l.RecipientName,
		Status:         string(l.Status),
		ExpiresAt:      l.ExpiresAt,
		SubmittedAt:    l.SubmittedAt,
		CreatedBy:      l.CreatedBy,
		CreatedAt:      l.CreatedAt,
	}
}

// PublicFormResponse is what an unauthenticated recipient sees. It carries no
// internal identifiers beyond the token the recipient already holds.
type PublicFormResponse struct {
	RecipientName  string           `json:"recipientName,omitempty"`
	RecipientEmail string           `json:"recipientEmail"`
	ExpiresAt      time.Time        `json:"expiresAt"`
	Customer       *CustomerRequest `json:"customer,omitempty"`
	Contacts       []ContactRequest `json:"contacts"`
}

func NewPublicFormResponse(res *formlink.Resolution) PublicFormResponse {
	resp := PublicFormResponse{Contacts: []ContactRequest{}}
	if res == nil || res.Link == nil {
		return resp
	}
	resp.RecipientName = res.Link.RecipientName
	resp.RecipientEmail = res.Link.RecipientEmail
	resp.ExpiresAt = res.Link.ExpiresAt
	if c := res.Customer; c != nil {
		resp.Customer = &CustomerRequest{
			CompanyName: c.CompanyName,
			TradeName:   c.TradeName,
			TaxID:       c.TaxID,
			TaxOffice:   c.TaxOffice,
			Profession:  c.Profession,
			Email:       c.Email,
			Phone:       c.Phone,
			Mobile:      c.Mobile,
			Address:     c.Address,
			City:        c.City,
			PostalCode:  c.PostalCode,
			IsCompany:   c.IsCompany,
		}
	}
	return resp
}

type SubmitFormRequest struct {
	Customer CustomerRequest  `json:"customer"`
	Contacts []ContactRequest `json:"contacts" validate:"max=10,dive"`
}

func (r SubmitFormRequest) ToSubmission() formlink.Submission {
	contacts := make([]contact.Details, len(r.Contacts))
	for i, c := range r.Contacts {
		contacts[i] = c.ToDetails()
	}
	cust := r.Customer.ToDetails()
	cust.Notes = ""
	return formlink.Submission{Customer: cust, Contacts: contacts}
}

type SubmitFormResponse struct {
	Status        string `json:"status"`
	ContactsAdded int    `json:"contactsAdded"`
}
