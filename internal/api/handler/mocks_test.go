package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/domain/formlink"
	"crm-admin/internal/domain/offer"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// withURLParams attaches chi route parameters the way the router would.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, details customer.Details) (*customer.Customer, error) {
	args := m.Called(ctx, details)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, filter customer.ListFilter) (*customer.Page, error) {
	args := m.Called(ctx, filter)
	p, _ := args.Get(0).(*customer.Page)
	return p, args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, details customer.Details) (*customer.Customer, error) {
	args := m.Called(ctx, customerID, details)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockCustomerService) RestoreCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerService) CheckDuplicates(ctx context.Context, probe customer.DuplicateProbe, excludeID int64) ([]customer.DuplicateMatch, error) {
	args := m.Called(ctx, probe, excludeID)
	d, _ := args.Get(0).([]customer.DuplicateMatch)
	return d, args.Error(1)
}

func (m *MockCustomerService) FindDuplicatesOf(ctx context.Context, customerID int64) ([]customer.DuplicateMatch, error) {
	args := m.Called(ctx, customerID)
	d, _ := args.Get(0).([]customer.DuplicateMatch)
	return d, args.Error(1)
}

func (m *MockCustomerService) GetStats(ctx context.Context) (*customer.Stats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*customer.Stats)
	return s, args.Error(1)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) CreateContact(ctx context.Context, customerID int64, details contact.Details) (*contact.Contact, error) {
	args := m.Called(ctx, customerID, details)
	c, _ := args.Get(0).(*contact.Contact)
	return c, args.Error(1)
}

func (m *MockContactService) GetContact(ctx context.Context, contactID int64) (*contact.Contact, error) {
	args := m.Called(ctx, contactID)
	c, _ := args.Get(0).(*contact.Contact)
	return c, args.Error(1)
}

func (m *MockContactService) ListContacts(ctx context.Context, customerID int64) ([]*contact.Contact, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).([]*contact.Contact)
	return c, args.Error(1)
}

func (m *MockContactService) UpdateContact(ctx context.Context, contactID int64, details contact.Details) (*contact.Contact, error) {
	args := m.Called(ctx, contactID, details)
	c, _ := args.Get(0).(*contact.Contact)
	return c, args.Error(1)
}

func (m *MockContactService) DeleteContact(ctx context.Context, contactID int64) error {
	return m.Called(ctx, contactID).Error(0)
}

func (m *MockContactService) SetPrimary(ctx context.Context, contactID int64) (*contact.Contact, error) {
	args := m.Called(ctx, contactID)
	c, _ := args.Get(0).(*contact.Contact)
	return c, args.Error(1)
}

type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) CreateOffer(ctx context.Context, customerID int64, details offer.Details) (*offer.Offer, error) {
	args := m.Called(ctx, customerID, details)
	o, _ := args.Get(0).(*offer.Offer)
	return o, args.Error(1)
}

func (m *MockOfferService) GetOffer(ctx context.Context, offerID int64) (*offer.Offer, error) {
	args := m.Called(ctx, offerID)
	o, _ := args.Get(0).(*offer.Offer)
	return o, args.Error(1)
}

func (m *MockOfferService) ListOffers(ctx context.Context, filter offer.ListFilter) (*offer.Page, error) {
	args := m.Called(ctx, filter)
	p, _ := args.Get(0).(*offer.Page)
	return p, args.Error(1)
}

func (m *MockOfferService) UpdateOffer(ctx context.Context, offerID int64, details offer.Details) (*offer.Offer, error) {
	args := m.Called(ctx, offerID, details)
	o, _ := args.Get(0).(*offer.Offer)
	return o, args.Error(1)
}

func (m *MockOfferService) ChangeStatus(ctx context.Context, offerID int64, to offer.Status, actor string) (*offer.Offer, error) {
	args := m.Called(ctx, offerID, to, actor)
	o, _ := args.Get(0).(*offer.Offer)
	return o, args.Error(1)
}

func (m *MockOfferService) DeleteOffer(ctx context.Context, offerID int64) error {
	return m.Called(ctx, offerID).Error(0)
}

func (m *MockOfferService) ListOverdueIDs(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *MockOfferService) CountByStatus(ctx context.Context, customerID *int64) (map[offer.Status]int, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(map[offer.Status]int)
	return c, args.Error(1)
}

type MockFormLinkService struct {
	mock.Mock
}

func (m *MockFormLinkService) Issue(ctx context.Context, input formlink.IssueInput) (*formlink.FormLink, string, error) {
	args := m.Called(ctx, input)
	l, _ := args.Get(0).(*formlink.FormLink)
	return l, args.String(1), args.Error(2)
}

func (m *MockFormLinkService) Resolve(ctx context.Context, token string) (*formlink.Resolution, error) {
	args := m.Called(ctx, token)
	r, _ := args.Get(0).(*formlink.Resolution)
	return r, args.Error(1)
}

func (m *MockFormLinkService) Submit(ctx context.Context, token string, submission formlink.Submission) (*formlink.SubmitResult, error) {
	args := m.Called(ctx, token, submission)
	r, _ := args.Get(0).(*formlink.SubmitResult)
	return r, args.Error(1)
}

func (m *MockFormLinkService) Revoke(ctx context.Context, linkID int64) (*formlink.FormLink, error) {
	args := m.Called(ctx, linkID)
	l, _ := args.Get(0).(*formlink.FormLink)
	return l, args.Error(1)
}

func (m *MockFormLinkService) List(ctx context.Context, filter formlink.ListFilter) (*formlink.Page, error) {
	args := m.Called(ctx, filter)
	p, _ := args.Get(0).(*formlink.Page)
	return p, args.Error(1)
}

func (m *MockFormLinkService) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFormLinkService) URLFor(token string) string {
	return "https://crm.example.gr/forms/" + token
}
