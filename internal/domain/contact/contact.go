package contact

import (
	"context"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/pkg/apperrors"
	"strings"
	"time"
)

type Details struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Mobile    string `json:"mobile"`
	Position  string `json:"position"`
	Notes     string `json:"notes"`
	IsPrimary bool   `json:"isPrimary"`
}

type Contact struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customerId"`
	Details
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func NewContact(customerID int64, d Details) *Contact {
	now := time.Now()
	return &Contact{
		CustomerID: customerID,
		Details:    d.Normalize(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (d Details) Normalize() Details {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Mobile = strings.TrimSpace(d.Mobile)
	d.Position = strings.TrimSpace(d.Position)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

func (d Details) Validate() error {
	if d.FirstName == "" && d.LastName == "" {
		return apperrors.NewValidationError("lastName", "first or last name is required")
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, contact *Contact) error

	Update(ctx context.Context, contact *Contact) error

	FindByID(ctx context.Context, contactID int64) (*Contact, error)

	ListByCustomer(ctx context.Context, customerID int64) ([]*Contact, error)

	CountByCustomer(ctx context.Context, customerID int64) (int, error)

	SoftDelete(ctx context.Context, contactID int64) error

	// ClearPrimary removes the primary flag from every contact of the customer.
	ClearPrimary(ctx context.Context, customerID int64) error

	// PromoteOldest makes the oldest remaining contact primary.
	PromoteOldest(ctx context.Context, customerID int64) error
}

// CustomerFinder is the part of the customer repository contacts depend on.
type CustomerFinder interface {
	FindByID(ctx context.Context, customerID int64) (*customer.Customer, error)
}
