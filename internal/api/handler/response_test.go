package handler

import (
	"errors"
	"fmt"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLimit  string
	}{
		{"not authenticated", apperrors.ErrNotAuthenticated, http.StatusUnauthorized, "NOT_AUTHENTICATED", ""},
		{"blocked", fmt.Errorf("%w: user 3", apperrors.ErrUserBlocked), http.StatusForbidden, "USER_BLOCKED", ""},
		{"insufficient salary", apperrors.NewInsufficientSalary(decimal.NewFromInt(3000), "salary must cover three times the price"), http.StatusUnprocessableEntity, "INSUFFICIENT_SALARY", "3000.00"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "CONFLICT", ""},
		{"database", apperrors.WrapDatabaseError(errors.New("timeout"), "failed to load loan"), http.StatusServiceUnavailable, "PERSISTENCE_UNAVAILABLE", ""},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			respondError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.Equal(t, tt.wantLimit, detail.Limit)
		})
	}
}

func TestRespondErrorHidesInfrastructureDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	respondError(rec, apperrors.WrapDatabaseError(errors.New("dial tcp 10.0.0.5:5432: connection refused"), "failed to load loan"))

	assert.NotContains(t, decodeError(t, rec).Message, "10.0.0.5")
}

func TestLogLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, logLevelFor(apperrors.NewExceedsEligibleAmount(decimal.NewFromInt(1))))
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.ErrNotFound))
	assert.Equal(t, slog.LevelError, logLevelFor(apperrors.ErrPricingUnavailable))
	assert.Equal(t, slog.LevelError, logLevelFor(errors.New("boom")))
}
