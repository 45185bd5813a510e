package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/public/forms/{token}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	for _, token := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public/forms/"+token, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status code %d, got %d", http.StatusOK, rec.Code)
		}
	}

	expectedTotal := `
		# HELP http_requests_total Total number of HTTP requests.
		# TYPE http_requests_total counter
		http_requests_total{method="GET",path="/public/forms/{token}",status_code="OK"} 2
	`
	if err := testutil.CollectAndCompare(httpRequestsTotal, strings.NewReader(expectedTotal)); err != nil {
		t.Errorf("unexpected metrics for http_requests_total: %v", err)
	}
}
