package offer

import (
	"context"
	"crm-admin/internal/domain/customer"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockOfferRepository struct {
	mock.Mock
}

var _ Repository = (*MockOfferRepository)(nil)

func (_m *MockOfferRepository) Save(ctx context.Context, offer *Offer) error {
	ret := _m.Called(ctx, offer)

	if rf, ok := ret.Get(0).(func(context.Context, *Offer) error); ok {
		return rf(ctx, offer)
	}
	return ret.Error(0)
}

func (_m *MockOfferRepository) FindByID(ctx context.Context, offerID int64) (*Offer, error) {
	ret := _m.Called(ctx, offerID)

	var r0 *Offer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Offer)
	}
	return r0, ret.Error(1)
}

func (_m *MockOfferRepository) List(ctx context.Context, filter ListFilter) ([]*Offer, int, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*Offer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Offer)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockOfferRepository) UpdateStatus(ctx context.Context, offer *Offer, from Status) error {
	ret := _m.Called(ctx, offer, from)
	return ret.Error(0)
}

func (_m *MockOfferRepository) SoftDelete(ctx context.Context, offerID int64) error {
	ret := _m.Called(ctx, offerID)
	return ret.Error(0)
}

func (_m *MockOfferRepository) FindOverdueIDs(ctx context.Context, now time.Time) ([]int64, error) {
	ret := _m.Called(ctx, now)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	return r0, ret.Error(1)
}

func (_m *MockOfferRepository) CountByStatus(ctx context.Context, customerID *int64) (map[Status]int, error) {
	ret := _m.Called(ctx, customerID)

	var r0 map[Status]int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[Status]int)
	}
	return r0, ret.Error(1)
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
