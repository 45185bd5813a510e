package contact

import (
	"context"
	"crm-admin/internal/domain/customer"

	"github.com/stretchr/testify/mock"
)

type MockContactRepository struct {
	mock.Mock
}

var _ Repository = (*MockContactRepository)(nil)

func (_m *MockContactRepository) Create(ctx context.Context, contact *Contact) error {
	ret := _m.Called(ctx, contact)

	if rf, ok := ret.Get(0).(func(context.Context, *Contact) error); ok {
		return rf(ctx, contact)
	}
	return ret.Error(0)
}

func (_m *MockContactRepository) Update(ctx context.Context, contact *Contact) error {
	ret := _m.Called(ctx, contact)
	return ret.Error(0)
}

func (_m *MockContactRepository) FindByID(ctx context.Context, contactID int64) (*Contact, error) {
	ret := _m.Called(ctx, contactID)

	var r0 *Contact
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Contact)
	}
	return r0, ret.Error(1)
}

func (_m *MockContactRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*Contact, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Contact
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Contact)
	}
	return r0, ret.Error(1)
}

func (_m *MockContactRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Int(0), ret.Error(1)
}

func (_m *MockContactRepository) SoftDelete(ctx context.Context, contactID int64) error {
	ret := _m.Called(ctx, contactID)
	return ret.Error(0)
}

func (_m *MockContactRepository) ClearPrimary(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func (_m *MockContactRepository) PromoteOldest(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

type MockCustomerFinder struct {
	mock.Mock
}

func (_m *MockCustomerFinder) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}
