package event

import "time"

const (
	RoutingKeyCustomerCreated    = "customer.created"
	RoutingKeyCustomerUpdated    = "customer.updated"
	RoutingKeyOfferStatusChanged = "offer.status_changed"
	RoutingKeyFormLinkIssued     = "formlink.issued"
	RoutingKeyFormLinkSubmitted  = "formlink.submitted"
)

type CustomerEventPayload struct {
	CustomerID  int64      `json:"customerId"`
	CompanyName string     `json:"companyName"`
	TaxID       string     `json:"taxId,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	IsCompany   bool       `json:"isCompany"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Action    string               `json:"action"`
	Payload   CustomerEventPayload `json:"payload"`
}

type OfferStatusChangedEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	OfferID      int64     `json:"offerId"`
	CustomerID   int64     `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Title        string    `json:"title"`
	Total        string    `json:"total"`
	OldStatus    string    `json:"oldStatus"`
	NewStatus    string    `json:"newStatus"`
	ChangedBy    string    `json:"changedBy,omitempty"`
}

type FormLinkIssuedEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	LinkID         int64     `json:"linkId"`
	CustomerID     *int64    `json:"customerId,omitempty"`
	CustomerName   string    `json:"customerName,omitempty"`
	RecipientEmail string    `json:"recipientEmail"`
	RecipientName  string    `json:"recipientName"`
	URL            string    `json:"url"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

type FormLinkSubmittedEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	LinkID         int64     `json:"linkId"`
	CustomerID     int64     `json:"customerId"`
	CompanyName    string    `json:"companyName"`
	TaxID          string    `json:"taxId,omitempty"`
	RecipientEmail string    `json:"recipientEmail"`
	NewCustomer    bool      `json:"newCustomer"`
	ContactsAdded  int       `json:"contactsAdded"`
	PossibleDupes  int       `json:"possibleDuplicates"`
}
