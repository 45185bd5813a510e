package formlink

import (
	"context"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockFormLinkRepository struct {
	mock.Mock
}

var _ Repository = (*MockFormLinkRepository)(nil)

func (_m *MockFormLinkRepository) Create(ctx context.Context, link *FormLink) error {
	ret := _m.Called(ctx, link)
	return ret.Error(0)
}

func (_m *MockFormLinkRepository) FindByID(ctx context.Context, linkID int64) (*FormLink, error) {
	ret := _m.Called(ctx, linkID)
	var r0 *FormLink
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*FormLink)
	}
	return r0, ret.Error(1)
}

func (_m *MockFormLinkRepository) FindByToken(ctx context.Context, token string) (*FormLink, error) {
	ret := _m.Called(ctx, token)
	var r0 *FormLink
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*FormLink)
	}
	return r0, ret.Error(1)
}

func (_m *MockFormLinkRepository) FindByTokenForUpdate(ctx context.Context, token string) (*FormLink, error) {
	ret := _m.Called(ctx, token)
	var r0 *FormLink
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*FormLink)
	}
	return r0, ret.Error(1)
}

func (_m *MockFormLinkRepository) List(ctx context.Context, filter ListFilter) ([]*FormLink, int, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*FormLink
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*FormLink)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockFormLinkRepository) MarkSubmitted(ctx context.Context, linkID, customerID int64, at time.Time) error {
	ret := _m.Called(ctx, linkID, customerID, at)
	return ret.Error(0)
}

func (_m *MockFormLinkRepository) UpdateStatus(ctx context.Context, linkID int64, status Status) error {
	ret := _m.Called(ctx, linkID, status)
	return ret.Error(0)
}

func (_m *MockFormLinkRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	ret := _m.Called(ctx, now)
	return ret.Get(0).(int64), ret.Error(1)
}

type MockCustomerStore struct {
	mock.Mock
}

func (_m *MockCustomerStore) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerStore) Save(ctx context.Context, c *customer.Customer) error {
	ret := _m.Called(ctx, c)
	return ret.Error(0)
}

type MockContactStore struct {
	mock.Mock
}

func (_m *MockContactStore) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Int(0), ret.Error(1)
}

func (_m *MockContactStore) ClearPrimary(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func (_m *MockContactStore) Create(ctx context.Context, c *contact.Contact) error {
	ret := _m.Called(ctx, c)
	return ret.Error(0)
}

type MockDuplicateChecker struct {
	mock.Mock
}

func (_m *MockDuplicateChecker) CheckDuplicates(ctx context.Context, probe customer.DuplicateProbe, excludeID int64) ([]customer.DuplicateMatch, error) {
	ret := _m.Called(ctx, probe, excludeID)
	var r0 []customer.DuplicateMatch
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]customer.DuplicateMatch)
	}
	return r0, ret.Error(1)
}

// MapCache is an in-memory Cache. It records TTLs but never expires entries.
type MapCache struct {
	mu      sync.Mutex
	Links   map[string]*FormLink
	TTLs    map[string]time.Duration
	Evicted []string
}

func NewMapCache() *MapCache {
	return &MapCache{Links: map[string]*FormLink{}, TTLs: map[string]time.Duration{}}
}

func (c *MapCache) Get(_ context.Context, token string) (*FormLink, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	link, ok := c.Links[token]
	if !ok {
		return nil, nil
	}
	cp := *link
	return &cp, nil
}

func (c *MapCache) Set(_ context.Context, link *FormLink, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *link
	c.Links[link.Token] = &cp
	c.TTLs[link.Token] = ttl
	return nil
}

func (c *MapCache) Evict(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Links, token)
	c.Evicted = append(c.Evicted, token)
	return nil
}
