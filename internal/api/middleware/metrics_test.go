package middleware

import (
	"lending-api/internal/infrastructure/monitoring"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	monitoring.HTTP.RequestsTotal.Reset()
	monitoring.HTTP.RequestDuration.Reset()

	var inFlight float64
	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Post("/loans/{loanID}/accept", func(w http.ResponseWriter, r *http.Request) {
		inFlight = testutil.ToFloat64(monitoring.HTTP.InFlight)
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"41", "42"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/loans/"+id+"/accept", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wp-admin/login.php", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	expected := `
		# HELP lending_http_requests_total Requests served by the lending API, by route template and status.
		# TYPE lending_http_requests_total counter
		lending_http_requests_total{method="GET",route="unmatched",status="404"} 1
		lending_http_requests_total{method="POST",route="/loans/{loanID}/accept",status="200"} 2
	`
	assert.NoError(t, testutil.CollectAndCompare(monitoring.HTTP.RequestsTotal, strings.NewReader(expected)))
	assert.Equal(t, 2, testutil.CollectAndCount(monitoring.HTTP.RequestDuration))
	assert.Equal(t, 1.0, inFlight)
	assert.Equal(t, 0.0, testutil.ToFloat64(monitoring.HTTP.InFlight))
}
