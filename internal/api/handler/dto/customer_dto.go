package dto

import (
	"time"

	"crm-admin/internal/domain/customer"
)

// CustomerRequest is the body of both create and full update.
type CustomerRequest struct {
	CompanyName string `json:"companyName" validate:"notblank,max=255"`
	TradeName   string `json:"tradeName" validate:"max=255"`
	TaxID       string `json:"taxId" validate:"taxid"`
	TaxOffice   string `json:"taxOffice" validate:"max=120"`
	Profession  string `json:"profession" validate:"max=255"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=40"`
	Mobile      string `json:"mobile" validate:"max=40"`
	Address     string `json:"address" validate:"max=255"`
	City        string `json:"city" validate:"max=120"`
	PostalCode  string `json:"postalCode" validate:"max=10"`
	Notes       string `json:"notes"`
	IsCompany   bool   `json:"isCompany"`
}

func (r CustomerRequest) ToDetails() customer.Details {
	return customer.Details{
		CompanyName: r.CompanyName,
		TradeName:   r.TradeName,
		TaxID:       r.TaxID,
		TaxOffice:   r.TaxOffice,
		Profession:  r.Profession,
		Email:       r.Email,
		Phone:       r.Phone,
		Mobile:      r.Mobile,
		Address:     r.Address,
		City:        r.City,
		PostalCode:  r.PostalCode,
		Notes:       r.Notes,
		IsCompany:   r.IsCompany,
	}
}

type CustomerResponse struct {
	ID          int64      `json:"id"`
	CompanyName string     `json:"companyName"`
	TradeName   string     `json:"tradeName,omitempty"`
	TaxID       string     `json:"taxId,omitempty"`
	TaxOffice   string     `json:"taxOffice,omitempty"`
	Profession  string     `json:"profession,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Mobile      string     `json:"mobile,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	PostalCode  string     `json:"postalCode,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	IsCompany   bool       `json:"isCompany"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	if c == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:          c.ID,
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
		Notes:       c.Notes,
		IsCompany:   c.IsCompany,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.DeletedAt,
	}
}

// DuplicateCheckRequest probes for existing customers resembling a record that
// has not been saved yet. ExcludeID skips the record being edited.
type DuplicateCheckRequest struct {
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	TaxID       string `json:"taxId"`
	ExcludeID   int64  `json:"excludeId" validate:"gte=0"`
}

func (r DuplicateCheckRequest) ToProbe() customer.DuplicateProbe {
	return customer.DuplicateProbe{
		CompanyName: r.CompanyName,
		Phone:       r.Phone,
		Mobile:      r.Mobile,
		TaxID:       r.TaxID,
	}
}

type DuplicateMatchResponse struct {
	CustomerID  int64    `json:"customerId"`
	CompanyName string   `json:"companyName"`
	TaxID       string   `json:"taxId,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Score       float64  `json:"score"`
	NameScore   float64  `json:"nameScore"`
	PhoneScore  float64  `json:"phoneScore"`
	TaxIDScore  float64  `json:"taxIdScore"`
	Reasons     []string `json:"reasons"`
}

func NewDuplicateMatchResponse(m customer.DuplicateMatch) DuplicateMatchResponse {
	reasons := m.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return DuplicateMatchResponse{
		CustomerID:  m.CustomerID,
		CompanyName: m.CompanyName,
		TaxID:       m.TaxID,
		Phone:       m.Phone,
		Score:       m.Score,
		NameScore:   m.NameScore,
		PhoneScore:  m.PhoneScore,
		TaxIDScore:  m.TaxIDScore,
		Reasons:     reasons,
	}
}

func NewDuplicateMatchesResponse(matches []customer.DuplicateMatch) []DuplicateMatchResponse {
	out := make([]DuplicateMatchResponse, len(matches))
	for i, m := range matches {
		out[i] = NewDuplicateMatchResponse(m)
	}
	return out
}

type CustomerStatsResponse struct {
	ActiveCustomers  int            `json:"activeCustomers"`
	DeletedCustomers int            `json:"deletedCustomers"`
	Companies        int            `json:"companies"`
	Individuals      int            `json:"individuals"`
	ActiveContacts   int            `json:"activeContacts"`
	PendingFormLinks int            `json:"pendingFormLinks"`
	OffersByStatus   map[string]int `json:"offersByStatus"`
}

func NewCustomerStatsResponse(s *customer.Stats) CustomerStatsResponse {
	if s == nil {
		return CustomerStatsResponse{OffersByStatus: map[string]int{}}
	}
	resp := CustomerStatsResponse{
		ActiveCustomers:  s.ActiveCustomers,
		DeletedCustomers: s.DeletedCustomers,
		Companies:        s.Companies,
		Individuals:      s.Individuals,
		ActiveContacts:   s.ActiveContacts,
		PendingFormLinks: s.PendingFormLinks,
		OffersByStatus:   s.OffersByStatus,
	}
	if resp.OffersByStatus == nil {
		resp.OffersByStatus = map[string]int{}
	}
	return resp
}
