package customer

import (
	"crm-admin/internal/pkg/apperrors"
	"crm-admin/internal/pkg/textnorm"
	"strings"
	"time"
)

const maxCompanyNameLength = 255

// Details are the editable fields of a customer record.
type Details struct {
	CompanyName string `json:"companyName"`
	TradeName   string `json:"tradeName"`
	TaxID       string `json:"taxId"`
	TaxOffice   string `json:"taxOffice"`
	Profession  string `json:"profession"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Notes       string `json:"notes"`
	IsCompany   bool   `json:"isCompany"`
}

type Customer struct {
	ID int64 `json:"id"`
	Details
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func NewCustomer(d Details) *Customer {
	now := time.Now()
	return &Customer{
		Details:   d.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}

// Apply replaces the editable fields and bumps UpdatedAt when anything changed.
func (c *Customer) Apply(d Details) bool {
	d = d.Normalize()
	if c.Details == d {
		return false
	}
	c.Details = d
	c.UpdatedAt = time.Now()
	return true
}

// Normalize trims every field, lower-cases the e-mail and reduces the tax ID to digits.
func (d Details) Normalize() Details {
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.TradeName = strings.TrimSpace(d.TradeName)
	d.TaxID = textnorm.TaxID(d.TaxID)
	d.TaxOffice = strings.TrimSpace(d.TaxOffice)
	d.Profession = strings.TrimSpace(d.Profession)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Mobile = strings.TrimSpace(d.Mobile)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.PostalCode = strings.TrimSpace(d.PostalCode)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

// Validate expects normalized details.
func (d Details) Validate() error {
	if d.CompanyName == "" {
		return apperrors.NewValidationError("companyName", "company name is required")
	}
	if len([]rune(d.CompanyName)) > maxCompanyNameLength {
		return apperrors.NewValidationError("companyName", "company name is too long")
	}
	if d.TaxID != "" && !textnorm.ValidTaxID(d.TaxID) {
		return apperrors.NewValidationError("taxId", "tax ID must be a valid 9-digit ΑΦΜ")
	}
	return nil
}

func (d Details) Probe() DuplicateProbe {
	return DuplicateProbe{
		CompanyName: d.CompanyName,
		Phone:       d.Phone,
		Mobile:      d.Mobile,
		TaxID:       d.TaxID,
	}
}

type ListFilter struct {
	Search         string
	Limit          int
	Offset         int
	IncludeDeleted bool
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Sanitize clamps paging values into their allowed ranges.
func (f ListFilter) Sanitize() ListFilter {
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

type Page struct {
	Items []*Customer
	Total int
}

type Stats struct {
	ActiveCustomers  int `json:"activeCustomers"`
	DeletedCustomers int `json:"deletedCustomers"`
	Companies        int `json:"companies"`
	Individuals      int `json:"individuals"`
	ActiveContacts   int `json:"activeContacts"`
	PendingFormLinks int `json:"pendingFormLinks"`

	// OffersByStatus counts live offers of live customers, keyed by offer status.
	OffersByStatus map[string]int `json:"offersByStatus"`
}
