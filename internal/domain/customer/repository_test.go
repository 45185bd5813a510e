package customer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) Save(ctx context.Context, customer *Customer) error {
	ret := _m.Called(ctx, customer)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		r0 = rf(ctx, customer)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Customer); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByIDIncludingDeleted(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) List(ctx context.Context, filter ListFilter) ([]*Customer, int, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockCustomerRepository) SoftDelete(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) Restore(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) FindDuplicateCandidates(ctx context.Context, excludeID int64) ([]DuplicateCandidate, error) {
	ret := _m.Called(ctx, excludeID)

	var r0 []DuplicateCandidate
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]DuplicateCandidate)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Stats(ctx context.Context) (*Stats, error) {
	ret := _m.Called(ctx)

	var r0 *Stats
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Stats)
	}

	return r0, ret.Error(1)
}

var _ Repository = (*MockCustomerRepository)(nil)

// PassthroughTransactor runs fn without a transaction and counts invocations.
type PassthroughTransactor struct {
	Calls int
}

func (p *PassthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.Calls++
	return fn(ctx)
}
