package handler

import (
	"log/slog"
	"net/http"

	"crm-admin/internal/api/handler/dto"
	"crm-admin/internal/domain/customer"
)

type CustomerHandler struct {
	service customer.Service
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.Service, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	return getIDFromURL(r, "customerID")
}

// CreateCustomer handles POST /customers
// @Summary Create a new customer
// @Description Creates a customer record. Fields are trimmed and the tax ID reduced to digits.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "A customer with the same tax ID exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error during creation"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CustomerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid create customer request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.ToDetails())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.Int64("customerID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Retrieve customer details
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(c))
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Lists customers ordered by company name. The search matches company name, trade name, tax ID, email and phone, ignoring Greek accents.
// @Tags Customers
// @Produce json
// @Param search query string false "Free-text search"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Param includeDeleted query bool false "Include soft-deleted customers"
// @Success 200 {object} dto.PageResponse[dto.CustomerResponse] "Page of customers"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	p, err := pagingFromQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}
	includeDeleted, err := queryBool(r, "includeDeleted")
	if err != nil {
		respondError(w, err)
		return
	}

	filter := customer.ListFilter{
		Search:         r.URL.Query().Get("search"),
		Limit:          p.Limit,
		Offset:         p.Offset,
		IncludeDeleted: includeDeleted,
	}.Sanitize()

	page, err := h.service.ListCustomers(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Customers listed", slog.Int("count", len(page.Items)), slog.Int("total", page.Total))
	respondJSON(w, http.StatusOK, dto.NewPageResponse(page.Items, page.Total, filter.Limit, filter.Offset, dto.NewCustomerResponse))
}

// UpdateCustomer handles PUT /customers/{customerID}
// @Summary Replace customer details
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.CustomerRequest true "Customer details"
// @Success 200 {object} dto.CustomerResponse "Customer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID or payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "A customer with the same tax ID exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.CustomerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid update customer request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), customerID, req.ToDetails())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /customers/{customerID}
// @Summary Soft-delete a customer
// @Description Marks the customer and its contacts as deleted. Nothing is removed from the database.
// @Tags Customers
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 204 "Customer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found or already deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to delete customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.Int64("customerID", customerID))
	respondNoContent(w)
}

// RestoreCustomer handles POST /customers/{customerID}/restore
// @Summary Restore a soft-deleted customer
// @Description Clears the deletion mark on the customer and on the contacts deleted together with it.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerResponse "Customer restored"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found or not deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/restore [post]
// @Security BearerAuth
func (h *CustomerHandler) RestoreCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	restored, err := h.service.RestoreCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to restore customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer restored successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(restored))
}

// CheckDuplicates handles POST /customers/duplicates
// @Summary Find likely duplicates of unsaved customer data
// @Description Scores existing customers by company name, phone and tax ID similarity. Advisory only.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.DuplicateCheckRequest true "Fields to compare"
// @Success 200 {array} dto.DuplicateMatchResponse "Matches above the threshold, best first"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/duplicates [post]
// @Security BearerAuth
func (h *CustomerHandler) CheckDuplicates(w http.ResponseWriter, r *http.Request) {
	var req dto.DuplicateCheckRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	matches, err := h.service.CheckDuplicates(r.Context(), req.ToProbe(), req.ExcludeID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to check duplicates", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDuplicateMatchesResponse(matches))
}

// GetCustomerDuplicates handles GET /customers/{customerID}/duplicates
// @Summary Find likely duplicates of a stored customer
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.DuplicateMatchResponse "Matches above the threshold, best first"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/duplicates [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomerDuplicates(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	matches, err := h.service.FindDuplicatesOf(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to find duplicates", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDuplicateMatchesResponse(matches))
}

// GetStats handles GET /customers/stats
// @Summary Dashboard counters
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.CustomerStatsResponse "Counters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/stats [get]
// @Security BearerAuth
func (h *CustomerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to load stats", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerStatsResponse(stats))
}
