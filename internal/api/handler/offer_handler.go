package handler

import (
	"log/slog"
	"net/http"

	"crm-admin/internal/api/handler/dto"
	mw "crm-admin/internal/api/middleware"
	"crm-admin/internal/domain/offer"
	"crm-admin/internal/pkg/apperrors"
)

type OfferHandler struct {
	service offer.Service
	logger  *slog.Logger
}

func NewOfferHandler(s offer.Service, l *slog.Logger) *OfferHandler {
	if s == nil {
		panic("offer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &OfferHandler{
		service: s,
		logger:  l.With("component", "OfferHandler"),
	}
}

func getOfferIDFromURL(r *http.Request) (int64, error) {
	return getIDFromURL(r, "offerID")
}

func statusFromQuery(r *http.Request) (*offer.Status, error) {
	s := r.URL.Query().Get("status")
	if s == "" {
		return nil, nil
	}
	st, ok := offer.ParseStatus(s)
	if !ok {
		return nil, apperrors.NewValidationError("status", "unknown offer status")
	}
	return &st, nil
}

// CreateOffer handles POST /offers
// @Summary Create a draft offer
// @Tags Offers
// @Accept json
// @Produce json
// @Param request body dto.OfferRequest true "Offer details; amounts are decimal strings"
// @Success 201 {object} dto.OfferResponse "Offer created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offers [post]
// @Security BearerAuth
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req dto.OfferRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid create offer request", slog.Any("error", err))
		respondError(w, err)
		return
	}
	details, err := req.ToDetails()
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateOffer(r.Context(), req.CustomerID, details)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to create offer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Offer created successfully", slog.Int64("offerID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewOfferResponse(created))
}

// GetOffer handles GET /offers/{offerID}
// @Summary Retrieve an offer
// @Tags Offers
// @Produce json
// @Param offerID path int true "Offer ID" Minimum(1)
// @Success 200 {object} dto.OfferResponse "Offer"
// @Failure 400 {object} dto.ErrorResponse "Invalid offer ID"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offers/{offerID} [get]
// @Security BearerAuth
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := getOfferIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	o, err := h.service.GetOffer(r.Context(), offerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get offer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewOfferResponse(o))
}

// ListOffers handles GET /offers
// @Summary List offers
// @Description Newest first, optionally filtered by customer and status.
// @Tags Offers
// @Produce json
// @Param customerId query int false "Customer ID"
// @Param status query string false "Offer status" Enums(draft, sent, accepted, rejected, expired, cancelled)
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.PageResponse[dto.OfferResponse] "Page of offers"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offers [get]
// @Security BearerAuth
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
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
	status, err := statusFromQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}

	filter := offer.ListFilter{CustomerID: customerID, Status: status, Limit: p.Limit, Offset: p.Offset}.Sanitize()
	page, err := h.service.ListOffers(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list offers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPageResponse(page.Items, page.Total, filter.Limit, filter.Offset, dto.NewOfferResponse))
}

// CountOffers handles GET /offers/counts
// @Summary Count offers per status
// @Tags Offers
// @Produce json
// @Param customerId query int false "Restrict to one customer"
// @Success 200 {object} dto.StatusCountsResponse "Counts keyed by status"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offers/counts [get]
// @Security BearerAuth
func (h *OfferHandler) CountOffers(w http.ResponseWriter, r *http.Request) {
	customerID, err := queryID(r, "customerId")
	if err != nil {
		respondError(w, err)
		return
	}

	counts, err := h.service.CountByStatus(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to count offers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewOfferStatusCounts(counts))
}

// UpdateOffer handles PUT /offers/{offerID}
// @Summary Replace a draft offer's details
// @Tags Offers
// @Accept json
// @Produce json
// @Param offerID path int true "Offer ID" Minimum(1)
// @Param request body dto.UpdateOfferRequest true "Offer details"
// @Success 200 {object} dto.OfferResponse "Offer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Failure 409 {object} dto.ErrorResponse "Offer is no longer a draft"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offers/{offerID} [put]
// @Security BearerAuth
func (h *OfferHandler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := getOfferIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateOfferRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}
	details, err := req.ToDetails()
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateOffer(r.Context(), offerID, details)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to update offer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Offer updated successfully", slog.Int64("offerID", offerID))
	respondJSON(w, http.StatusOK, dto.NewOfferResponse(updated))
}

// ChangeStatus handles PUT /offers/{offerID}/status
// @Summary Move an offer through its lifecycle
// @Description draft → sent|cancelled; sent → accepted|rejected|expired|cancelled. Final states have no exits.
// @Tags Offers
// @Accept json
// @Produce json
// @Param offerID path int true "Offer ID" Minimum(1)
// @Param request body dto.ChangeOfferStatusRequest true "Target status"
// @Success 200 {object} dto.OfferResponse "Offer with its new status"
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offers/{offerID}/status [put]
// @Security BearerAuth
func (h *OfferHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	offerID, err := getOfferIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.ChangeOfferStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}
	to, _ := offer.ParseStatus(req.Status)

	actor := mw.Subject(r.Context())
	updated, err := h.service.ChangeStatus(r.Context(), offerID, to, actor)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to change offer status", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Offer status changed",
		slog.Int64("offerID", offerID), slog.String("status", string(to)), slog.String("actor", actor))
	respondJSON(w, http.StatusOK, dto.NewOfferResponse(updated))
}

// DeleteOffer handles DELETE /offers/{offerID}
// @Summary Soft-delete an offer
// @Tags Offers
// @Param offerID path int true "Offer ID" Minimum(1)
// @Success 204 "Offer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid offer ID"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offers/{offerID} [delete]
// @Security BearerAuth
func (h *OfferHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := getOfferIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteOffer(r.Context(), offerID); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to delete offer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Offer deleted successfully", slog.Int64("offerID", offerID))
	respondNoContent(w)
}
