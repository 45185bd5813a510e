package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm-admin/internal/api/handler"
	"crm-admin/internal/api/handler/dto"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleCustomer(id int64) *customer.Customer {
	return &customer.Customer{
		ID: id,
		Details: customer.Details{
			CompanyName: "Αλφα Τεχνική ΑΕ",
			TaxID:       "094014201",
			Phone:       "2101234567",
			IsCompany:   true,
		},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewCustomerHandler_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { handler.NewCustomerHandler(nil, testLogger) })
	assert.Panics(t, func() { handler.NewCustomerHandler(new(MockCustomerService), nil) })
}

func TestCreateCustomer(t *testing.T) {
	t.Run("creates a customer", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		svc.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(d customer.Details) bool {
			return d.CompanyName == "Αλφα Τεχνική ΑΕ" && d.TaxID == "094014201"
		})).Return(sampleCustomer(7), nil).Once()

		body := `{"companyName":"Αλφα Τεχνική ΑΕ","taxId":"094014201","phone":"2101234567","isCompany":true}`
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		h.CreateCustomer(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "Αλφα Τεχνική ΑΕ", resp.CompanyName)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a blank company name", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"companyName":"   "}`))
		rr := httptest.NewRecorder()

		h.CreateCustomer(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "companyName", resp.Error.Field)
		svc.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"companyName":"X","vat":"1"}`))
		rr := httptest.NewRecorder()

		h.CreateCustomer(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("shared tax id is accepted", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		existing := sampleCustomer(8)
		existing.CompanyName = "Βήτα ΟΕ"
		svc.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(d customer.Details) bool {
			return d.TaxID == "094014201"
		})).Return(existing, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"companyName":"Βήτα ΟΕ","taxId":"094014201"}`))
		rr := httptest.NewRecorder()

		h.CreateCustomer(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		svc.On("CreateCustomer", mock.Anything, mock.Anything).Return(nil, apperrors.ErrAlreadyExists).Once()

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"companyName":"Βήτα ΟΕ"}`))
		rr := httptest.NewRecorder()

		h.CreateCustomer(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetCustomer(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc, testLogger)

	svc.On("GetCustomer", mock.Anything, int64(7)).Return(sampleCustomer(7), nil).Once()
	svc.On("GetCustomer", mock.Anything, int64(8)).Return(nil, apperrors.ErrNotFound).Once()

	t.Run("found", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/customers/7", nil), "customerID", "7")
		rr := httptest.NewRecorder()
		h.GetCustomer(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/customers/8", nil), "customerID", "8")
		rr := httptest.NewRecorder()
		h.GetCustomer(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/customers/abc", nil), "customerID", "abc")
		rr := httptest.NewRecorder()
		h.GetCustomer(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	svc.AssertExpectations(t)
}

func TestListCustomers(t *testing.T) {
	t.Run("passes sanitized filter and wraps the page", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		expected := customer.ListFilter{Search: "αλφα", Limit: 200, Offset: 10, IncludeDeleted: true}
		svc.On("ListCustomers", mock.Anything, expected).
			Return(&customer.Page{Items: []*customer.Customer{sampleCustomer(1), sampleCustomer(2)}, Total: 12}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers?search=%20%CE%B1%CE%BB%CF%86%CE%B1%20&limit=999&offset=10&includeDeleted=true", nil)
		rr := httptest.NewRecorder()

		h.ListCustomers(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.PageResponse[dto.CustomerResponse]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Items, 2)
		assert.Equal(t, 12, resp.Total)
		assert.Equal(t, 200, resp.Limit)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a negative offset", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		req := httptest.NewRequest(http.MethodGet, "/customers?offset=-1", nil)
		rr := httptest.NewRecorder()

		h.ListCustomers(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("database failure", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger)

		svc.On("ListCustomers", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDatabase).Once()

		rr := httptest.NewRecorder()
		h.ListCustomers(rr, httptest.NewRequest(http.MethodGet, "/customers", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestUpdateCustomer(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc, testLogger)

	updated := sampleCustomer(7)
	updated.City = "Αθήνα"
	svc.On("UpdateCustomer", mock.Anything, int64(7), mock.MatchedBy(func(d customer.Details) bool {
		return d.City == "Αθήνα"
	})).Return(updated, nil).Once()

	req := withURLParams(httptest.NewRequest(http.MethodPut, "/customers/7",
		bytes.NewBufferString(`{"companyName":"Αλφα Τεχνική ΑΕ","city":"Αθήνα"}`)), "customerID", "7")
	rr := httptest.NewRecorder()

	h.UpdateCustomer(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestDeleteAndRestoreCustomer(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc, testLogger)

	svc.On("DeleteCustomer", mock.Anything, int64(7)).Return(nil).Once()
	svc.On("RestoreCustomer", mock.Anything, int64(7)).Return(sampleCustomer(7), nil).Once()
	svc.On("RestoreCustomer", mock.Anything, int64(9)).
		Return(nil, errors.Join(apperrors.ErrConflict, errors.New("customer is not deleted"))).Once()

	rr := httptest.NewRecorder()
	h.DeleteCustomer(rr, withURLParams(httptest.NewRequest(http.MethodDelete, "/customers/7", nil), "customerID", "7"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = httptest.NewRecorder()
	h.RestoreCustomer(rr, withURLParams(httptest.NewRequest(http.MethodPost, "/customers/7/restore", nil), "customerID", "7"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.RestoreCustomer(rr, withURLParams(httptest.NewRequest(http.MethodPost, "/customers/9/restore", nil), "customerID", "9"))
	assert.Equal(t, http.StatusConflict, rr.Code)

	svc.AssertExpectations(t)
}

func TestCheckDuplicates(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc, testLogger)

	probe := customer.DuplicateProbe{CompanyName: "Αλφα Τεχνικη", Phone: "+30 210 1234567"}
	svc.On("CheckDuplicates", mock.Anything, probe, int64(3)).Return([]customer.DuplicateMatch{
		{CustomerID: 7, CompanyName: "Αλφα Τεχνική ΑΕ", Score: 0.92, Reasons: []string{"name", "phone"}},
	}, nil).Once()

	body := `{"companyName":"Αλφα Τεχνικη","phone":"+30 210 1234567","excludeId":3}`
	rr := httptest.NewRecorder()
	h.CheckDuplicates(rr, httptest.NewRequest(http.MethodPost, "/customers/duplicates", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []dto.DuplicateMatchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(7), resp[0].CustomerID)
	assert.Equal(t, []string{"name", "phone"}, resp[0].Reasons)
	svc.AssertExpectations(t)
}

func TestGetCustomerDuplicates_EmptyIsArray(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc, testLogger)

	svc.On("FindDuplicatesOf", mock.Anything, int64(7)).Return(nil, nil).Once()

	rr := httptest.NewRecorder()
	h.GetCustomerDuplicates(rr, withURLParams(httptest.NewRequest(http.MethodGet, "/customers/7/duplicates", nil), "customerID", "7"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetStats(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc, testLogger)

	svc.On("GetStats", mock.Anything).Return(&customer.Stats{
		ActiveCustomers: 4, Companies: 3, Individuals: 1, PendingFormLinks: 2,
		OffersByStatus: map[string]int{"draft": 1, "sent": 2},
	}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetStats(rr, httptest.NewRequest(http.MethodGet, "/customers/stats", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.CustomerStatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.ActiveCustomers)
	assert.Equal(t, 2, resp.PendingFormLinks)
	assert.Equal(t, 2, resp.OffersByStatus["sent"])
}
