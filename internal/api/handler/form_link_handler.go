package handler

import (
	"log/slog"
	"net/http"

	"crm-admin/internal/api/handler/dto"
	mw "crm-admin/internal/api/middleware"
	"crm-admin/internal/domain/formlink"
	"crm-admin/internal/pkg/apperrors"
)

// FormLinkHandler serves the admin side of form links.
type FormLinkHandler struct {
	service formlink.Service
	logger  *slog.Logger
}

func NewFormLinkHandler(s formlink.Service, l *slog.Logger) *FormLinkHandler {
	if s == nil {
		panic("form link service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &FormLinkHandler{
		service: s,
		logger:  l.With("component", "FormLinkHandler"),
	}
}

func (h *FormLinkHandler) response(l *formlink.FormLink) dto.FormLinkResponse {
	return dto.NewFormLinkResponse(l, h.service.URLFor(l.Token))
}

// IssueFormLink handles POST /form-links
// @Summary Issue a form link
// @Description Creates a single-use link and e-mails it to the recipient. Without customerId the submission creates a new customer.
// @Tags FormLinks
// @Accept json
// @Produce json
// @Param request body dto.IssueFormLinkRequest true "Recipient and optional customer"
// @Success 201 {object} dto.FormLinkResponse "Link issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or TTL above the maximum"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /form-links [post]
// @Security BearerAuth
func (h *FormLinkHandler) IssueFormLink(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueFormLinkRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid issue form link request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	link, _, err := h.service.Issue(r.Context(), req.ToInput(mw.Subject(r.Context())))
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to issue form link", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Form link issued", slog.Int64("linkID", link.ID))
	respondJSON(w, http.StatusCreated, h.response(link))
}

// ListFormLinks handles GET /form-links
// @Summary List form links
// @Tags FormLinks
// @Produce json
// @Param status query string false "Link status" Enums(pending, submitted, expired, revoked)
// @Param customerId query int false "Customer ID"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.PageResponse[dto.FormLinkResponse] "Page of links"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /form-links [get]
// @Security BearerAuth
func (h *FormLinkHandler) ListFormLinks(w http.ResponseWriter, r *http.Request) {
	p, err := pagingFromQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}
	customerID, err := queryID(r, "customerId")
	if err != nil {
		respondError(w, err)
		return
	}
	filter := formlink.ListFilter{CustomerID: customerID, Limit: p.Limit, Offset: p.Offset}
	if s := r.URL.Query().Get("status"); s != "" {
		st, ok := formlink.ParseStatus(s)
		if !ok {
			respondError(w, apperrors.NewValidationError("status", "unknown form link status"))
			return
		}
		filter.Status = &st
	}
	filter = filter.Sanitize()

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list form links", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPageResponse(page.Items, page.Total, filter.Limit, filter.Offset, h.response))
}

// RevokeFormLink handles DELETE /form-links/{linkID}
// @Summary Revoke a pending form link
// @Tags FormLinks
// @Produce json
// @Param linkID path int true "Link ID" Minimum(1)
// @Success 200 {object} dto.FormLinkResponse "Link revoked"
// @Failure 400 {object} dto.ErrorResponse "Invalid link ID"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 409 {object} dto.ErrorResponse "Link is no longer pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /form-links/{linkID} [delete]
// @Security BearerAuth
func (h *FormLinkHandler) RevokeFormLink(w http.ResponseWriter, r *http.Request) {
	linkID, err := getIDFromURL(r, "linkID")
	if err != nil {
		respondError(w, err)
		return
	}

	link, err := h.service.Revoke(r.Context(), linkID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to revoke form link", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Form link revoked", slog.Int64("linkID", linkID))
	respondJSON(w, http.StatusOK, h.response(link))
}
