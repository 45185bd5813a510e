package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm-admin/internal/api"
	"crm-admin/internal/config"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/domain/formlink"
	"crm-admin/internal/domain/offer"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerSecret = "router-test-secret"

type stubCustomers struct{ customer.Service }

func (stubCustomers) ListCustomers(context.Context, customer.ListFilter) (*customer.Page, error) {
	return &customer.Page{}, nil
}

type stubContacts struct{ contact.Service }

type stubOffers struct{ offer.Service }

type stubFormLinks struct{ formlink.Service }

func (stubFormLinks) Resolve(_ context.Context, token string) (*formlink.Resolution, error) {
	return &formlink.Resolution{Link: &formlink.FormLink{Token: token, RecipientEmail: "info@alfa.gr", Status: formlink.StatusPending}}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Auth:            config.AuthConfig{Enabled: true, JWTSecret: routerSecret},
			PublicRateLimit: config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := api.Services{
		Customers: stubCustomers{},
		Contacts:  stubContacts{},
		Offers:    stubOffers{},
		FormLinks: stubFormLinks{},
	}
	return api.SetupRouter(ctx, svc, cfg, logger)
}

func bearer(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "eleni",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(routerSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customers", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", bearer(t))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_PublicFormsAreOpenAndLimited(t *testing.T) {
	router := newTestRouter(t)
	path := "/public/forms/3f1c9a52-7d0b-4e61-9b8a-2f6a1d4c8e77"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestRouter_PublicLimiterIgnoresForwardedFor(t *testing.T) {
	router := newTestRouter(t)
	path := "/public/forms/3f1c9a52-7d0b-4e61-9b8a-2f6a1d4c8e77"

	codes := make([]int, 0, 4)
	for _, xff := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Forwarded-For", xff)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRouter_SwaggerRedirect(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger", nil))

	assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	assert.Equal(t, "/swagger/index.html", rr.Header().Get("Location"))
}
