package handler

import (
	"log/slog"
	"net/http"

	"crm-admin/internal/api/handler/dto"
	"crm-admin/internal/domain/contact"
)

type ContactHandler struct {
	service contact.Service
	logger  *slog.Logger
}

func NewContactHandler(s contact.Service, l *slog.Logger) *ContactHandler {
	if s == nil {
		panic("contact service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ContactHandler{
		service: s,
		logger:  l.With("component", "ContactHandler"),
	}
}

func getContactIDFromURL(r *http.Request) (int64, error) {
	return getIDFromURL(r, "contactID")
}

// CreateContact handles POST /customers/{customerID}/contacts
// @Summary Add a contact person to a customer
// @Description The first contact of a customer becomes primary. Marking a contact primary clears the flag on its siblings.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.ContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse "Contact created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/contacts [post]
// @Security BearerAuth
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.ContactRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid create contact request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.service.CreateContact(r.Context(), customerID, req.ToDetails())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to create contact", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Contact created successfully",
		slog.Int64("customerID", customerID), slog.Int64("contactID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewContactResponse(created))
}

// ListContacts handles GET /customers/{customerID}/contacts
// @Summary List a customer's contacts
// @Description Primary contact first, then by creation time.
// @Tags Contacts
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.ContactResponse "Contacts"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/contacts [get]
// @Security BearerAuth
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	contacts, err := h.service.ListContacts(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to list contacts", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewContactsResponse(contacts))
}

// GetContact handles GET /contacts/{contactID}
// @Summary Retrieve a contact
// @Tags Contacts
// @Produce json
// @Param contactID path int true "Contact ID" Minimum(1)
// @Success 200 {object} dto.ContactResponse "Contact"
// @Failure 400 {object} dto.ErrorResponse "Invalid contact ID"
// @Failure 404 {object} dto.ErrorResponse "Contact not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contacts/{contactID} [get]
// @Security BearerAuth
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	contactID, err := getContactIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.service.GetContact(r.Context(), contactID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get contact", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewContactResponse(c))
}

// UpdateContact handles PUT /contacts/{contactID}
// @Summary Replace contact details
// @Tags Contacts
// @Accept json
// @Produce json
// @Param contactID path int true "Contact ID" Minimum(1)
// @Param request body dto.ContactRequest true "Contact details"
// @Success 200 {object} dto.ContactResponse "Contact updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid contact ID or payload"
// @Failure 404 {object} dto.ErrorResponse "Contact not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contacts/{contactID} [put]
// @Security BearerAuth
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	contactID, err := getContactIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.ContactRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateContact(r.Context(), contactID, req.ToDetails())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to update contact", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Contact updated successfully", slog.Int64("contactID", contactID))
	respondJSON(w, http.StatusOK, dto.NewContactResponse(updated))
}

// DeleteContact handles DELETE /contacts/{contactID}
// @Summary Soft-delete a contact
// @Description Deleting the primary contact promotes the oldest remaining one.
// @Tags Contacts
// @Param contactID path int true "Contact ID" Minimum(1)
// @Success 204 "Contact deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid contact ID"
// @Failure 404 {object} dto.ErrorResponse "Contact not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contacts/{contactID} [delete]
// @Security BearerAuth
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	contactID, err := getContactIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteContact(r.Context(), contactID); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to delete contact", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Contact deleted successfully", slog.Int64("contactID", contactID))
	respondNoContent(w)
}

// SetPrimary handles PUT /contacts/{contactID}/primary
// @Summary Make a contact the customer's primary contact
// @Tags Contacts
// @Produce json
// @Param contactID path int true "Contact ID" Minimum(1)
// @Success 200 {object} dto.ContactResponse "Contact is now primary"
// @Failure 400 {object} dto.ErrorResponse "Invalid contact ID"
// @Failure 404 {object} dto.ErrorResponse "Contact not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contacts/{contactID}/primary [put]
// @Security BearerAuth
func (h *ContactHandler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	contactID, err := getContactIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.service.SetPrimary(r.Context(), contactID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to set primary contact", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Primary contact changed", slog.Int64("contactID", contactID))
	respondJSON(w, http.StatusOK, dto.NewContactResponse(c))
}
