package pricing

import (
	"context"
	"io"
	"lending-api/internal/config"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(config.PricingConfig{BaseURL: url + "/", APIKey: "secret", Timeout: timeout}, logger)
}

func TestClient_GetCarPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/prices", r.URL.Path)
			assert.Equal(t, "Toyota Prius 2015", r.URL.Query().Get("model"))
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"price":"12345.50"}`))
		}))
		defer srv.Close()

		price, err := newTestClient(srv.URL, time.Second).GetCarPrice(ctx, "Toyota Prius 2015")

		require.NoError(t, err)
		assert.Equal(t, "12345.50", price.StringFixed(2))
	})

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"zero price", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"price":"0"}`))
		}},
		{"negative price", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"price":-10}`))
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
		{"empty body", func(w http.ResponseWriter, r *http.Request) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestClient(srv.URL, time.Second).GetCarPrice(ctx, "Lada")

			assert.ErrorIs(t, err, apperrors.ErrPricingUnavailable)
		})
	}

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := newTestClient(srv.URL, 50*time.Millisecond).GetCarPrice(ctx, "Lada")

		assert.ErrorIs(t, err, apperrors.ErrPricingUnavailable)
		assert.True(t, apperrors.IsRetryable(err))
	})
}
