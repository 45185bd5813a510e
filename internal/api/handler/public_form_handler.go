package handler

import (
	"log/slog"
	"net/http"

	"crm-admin/internal/api/handler/dto"
	"crm-admin/internal/domain/formlink"

	"github.com/go-chi/chi/v5"
)

// PublicFormHandler serves the unauthenticated side of form links. Tokens are never logged.
type PublicFormHandler struct {
	service formlink.Service
	logger  *slog.Logger
}

func NewPublicFormHandler(s formlink.Service, l *slog.Logger) *PublicFormHandler {
	if s == nil {
		panic("form link service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &PublicFormHandler{
		service: s,
		logger:  l.With("component", "PublicFormHandler"),
	}
}

// GetForm handles GET /public/forms/{token}
// @Summary Load a customer form
// @Description Returns the recipient and any prefilled customer data for a pending, unexpired link.
// @Tags PublicForms
// @Produce json
// @Param token path string true "Form token"
// @Success 200 {object} dto.PublicFormResponse "Form data"
// @Failure 404 {object} dto.ErrorResponse "Unknown token"
// @Failure 410 {object} dto.ErrorResponse "Link expired, revoked or already used"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Router /public/forms/{token} [get]
func (h *PublicFormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to resolve public form", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPublicFormResponse(res))
}

// SubmitForm handles POST /public/forms/{token}
// @Summary Submit a customer form
// @Description Stores the customer and contacts and closes the link. A link accepts exactly one submission.
// @Tags PublicForms
// @Accept json
// @Produce json
// @Param token path string true "Form token"
// @Param request body dto.SubmitFormRequest true "Customer and contacts"
// @Success 201 {object} dto.SubmitFormResponse "Submission stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Unknown token"
// @Failure 410 {object} dto.ErrorResponse "Link expired, revoked or already used"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Router /public/forms/{token} [post]
func (h *PublicFormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitFormRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid public form submission", slog.Any("error", err))
		respondError(w, err)
		return
	}

	result, err := h.service.Submit(r.Context(), chi.URLParam(r, "token"), req.ToSubmission())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to store public form submission", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Public form submitted",
		slog.Int64("linkID", result.Link.ID), slog.Bool("newCustomer", result.NewCustomer))
	respondJSON(w, http.StatusCreated, dto.SubmitFormResponse{Status: "submitted", ContactsAdded: result.ContactsAdded})
}
