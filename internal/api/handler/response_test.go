package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-admin/internal/api/handler/dto"
	"crm-admin/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		field  string
		code   string
	}{
		{"validation", apperrors.NewValidationError("taxId", "invalid"), http.StatusBadRequest, "taxId", ""},
		{"not found", fmt.Errorf("customer 4: %w", apperrors.ErrNotFound), http.StatusNotFound, "", ""},
		{"invalid argument", apperrors.ErrInvalidArgument, http.StatusBadRequest, "", ""},
		{"already exists", apperrors.ErrAlreadyExists, http.StatusConflict, "", ""},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "", ""},
		{"gone", apperrors.ErrGone, http.StatusGone, "", ""},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "", ""},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "", ""},
		{"external", apperrors.WrapExternalError(errors.New("timeout"), "SENDGRID", "send failed"), http.StatusBadGateway, "", "EXTERNAL_ERROR"},
		{"database", apperrors.WrapDatabaseError(errors.New("conn reset"), "query failed"), http.StatusInternalServerError, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondError(rr, tc.err)

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tc.field, resp.Error.Field)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	respondError(rr, errors.New("pq: password authentication failed for user crm"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestLogLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.ErrNotFound))
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.NewValidationError("x", "y")))
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.ErrGone))
	assert.Equal(t, slog.LevelError, logLevelFor(apperrors.ErrDatabase))
	assert.Equal(t, slog.LevelError, logLevelFor(errors.New("boom")))
}

func TestPagingFromQuery(t *testing.T) {
	p, err := pagingFromQuery(httptest.NewRequest(http.MethodGet, "/x?limit=25&offset=50", nil))
	require.NoError(t, err)
	assert.Equal(t, paging{Limit: 25, Offset: 50}, p)

	_, err = pagingFromQuery(httptest.NewRequest(http.MethodGet, "/x?limit=ten", nil))
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "limit", ve.Field)
}

func TestQueryID(t *testing.T) {
	id, err := queryID(httptest.NewRequest(http.MethodGet, "/x", nil), "customerId")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = queryID(httptest.NewRequest(http.MethodGet, "/x?customerId=12", nil), "customerId")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(12), *id)

	_, err = queryID(httptest.NewRequest(http.MethodGet, "/x?customerId=-1", nil), "customerId")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
