package dto

import (
	"time"

	"crm-admin/internal/domain/contact"
)

type ContactRequest struct {
	FirstName string `json:"firstName" validate:"max=120"`
	LastName  string `json:"lastName" validate:"max=120"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=40"`
	Mobile    string `json:"mobile" validate:"max=40"`
	Position  string `json:"position" validate:"max=120"`
	Notes     string `json:"notes"`
	IsPrimary bool   `json:"isPrimary"`
}

func (r ContactRequest) ToDetails() contact.Details {
	return contact.Details{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Mobile:    r.Mobile,
		Position:  r.Position,
		Notes:     r.Notes,
		IsPrimary: r.IsPrimary,
	}
}

type ContactResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Mobile     string    `json:"mobile,omitempty"`
	Position   string    `json:"position,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	IsPrimary  bool      `json:"isPrimary"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewContactResponse(c *contact.Contact) ContactResponse {
	if c == nil {
		return ContactResponse{}
	}
	return ContactResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		FullName:   c.FullName(),
		Email:      c.Email,
		Phone:      c.Phone,
		Mobile:     c.Mobile,
		Position:   c.Position,
		Notes:      c.Notes,
		IsPrimary:  c.IsPrimary,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func NewContactsResponse(contacts []*contact.Contact) []ContactResponse {
	out := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		out[i] = NewContactResponse(c)
	}
	return out
}
