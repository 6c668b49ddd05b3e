package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"lending-api/internal/api/handler/dto"
	"lending-api/internal/api/middleware"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
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

type errorMapping struct {
	kind   error
	status int
	code   string
}

// Order matters: an error is reported under the first kind it matches.
var errorMappings = []errorMapping{
	{apperrors.ErrNotAuthenticated, http.StatusUnauthorized, "NOT_AUTHENTICATED"},
	{apperrors.ErrUserBlocked, http.StatusForbidden, "USER_BLOCKED"},
	{apperrors.ErrUnauthorized, http.StatusForbidden, "UNAUTHORIZED"},
	{apperrors.ErrLoanNotAcceptedOrNotOwned, http.StatusConflict, "LOAN_NOT_ACCEPTED_OR_NOT_OWNED"},
	{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{apperrors.ErrExceedsEligibleAmount, http.StatusUnprocessableEntity, "EXCEEDS_ELIGIBLE_AMOUNT"},
	{apperrors.ErrInsufficientSalary, http.StatusUnprocessableEntity, "INSUFFICIENT_SALARY"},
	{apperrors.ErrPeriodNotAllowed, http.StatusUnprocessableEntity, "PERIOD_NOT_ALLOWED"},
	{apperrors.ErrInvalidLoanPeriod, http.StatusBadRequest, "INVALID_LOAN_PERIOD"},
	{apperrors.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
	{apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
	{apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
	{apperrors.ErrInvalidArgument, http.StatusBadRequest, "INVALID_ARGUMENT"},
	{apperrors.ErrPricingUnavailable, http.StatusServiceUnavailable, "PRICING_UNAVAILABLE"},
	{apperrors.ErrDatabase, http.StatusServiceUnavailable, "PERSISTENCE_UNAVAILABLE"},
}

func respondError(w http.ResponseWriter, err error) {
	detail := dto.ErrorDetail{Message: "An unexpected error occurred.", Code: "INTERNAL"}
	status := http.StatusInternalServerError

	matched := false
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			status, detail.Code, detail.Message = m.status, m.code, err.Error()
			matched = true
			break
		}
	}

	var validationError *apperrors.ValidationError
	var eligibilityError *apperrors.EligibilityError
	switch {
	case !matched:
		slog.Default().Error("Unhandled internal error", "error", err)
	case status == http.StatusServiceUnavailable:
		detail.Message = "A dependency is temporarily unavailable, please retry."
	case errors.As(err, &eligibilityError):
		if !eligibilityError.Limit.IsZero() {
			detail.Limit = eligibilityError.Limit.StringFixed(2)
		}
	case errors.As(err, &validationError):
		detail.Message, detail.Field = validationError.Message, validationError.Field
	}

	respondJSON(w, status, dto.ErrorResponse{Error: detail})
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

// actorFrom returns the caller attached by the auth middleware or writes a 401.
func actorFrom(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		respondError(w, apperrors.ErrNotAuthenticated)
		return nil, false
	}
	return actor, true
}

// logLevelFor keeps expected caller mistakes out of the error log.
func logLevelFor(err error) slog.Level {
	var eligibilityError *apperrors.EligibilityError
	switch {
	case errors.Is(err, apperrors.ErrDatabase), errors.Is(err, apperrors.ErrPricingUnavailable):
		return slog.LevelError
	case errors.As(err, &eligibilityError):
		return slog.LevelInfo
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			return slog.LevelWarn
		}
	}
	return slog.LevelError
}
