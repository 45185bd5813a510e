package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"crm-admin/internal/api/handler/dto"
	"crm-admin/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// decodeAndValidate decodes the body into v and runs its validation tags.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := decodeJSON(r, v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	return dto.Validate(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field, code := http.StatusInternalServerError, "An unexpected error occurred.", "", ""
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusConflict, "A record with the same unique values already exists."
	case errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrGone):
		status, message = http.StatusGone, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status, message = http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrExternalService):
		status, message, code = http.StatusBadGateway, "An upstream service failed.", "EXTERNAL_ERROR"
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

// logLevelFor reports client errors at warn and everything else at error.
func logLevelFor(err error) slog.Level {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrGone):
		return slog.LevelWarn
	}
	return slog.LevelError
}

func getIDFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, param, idStr)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError(name, fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return n, nil
}

func queryID(r *http.Request, name string) (*int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError(name, fmt.Sprintf("%s must be a positive integer", name))
	}
	return &id, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, apperrors.NewValidationError(name, fmt.Sprintf("%s must be true or false", name))
	}
	return b, nil
}

type paging struct {
	Limit  int
	Offset int
}

func pagingFromQuery(r *http.Request) (paging, error) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return paging{}, err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return paging{}, err
	}
	return paging{Limit: limit, Offset: offset}, nil
}
