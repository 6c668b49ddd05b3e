package handler

import (
	"context"
	"fmt"
	"lending-api/internal/api/handler/dto"
	"lending-api/internal/domain/loan"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	if s == nil {
		panic("loan service cannot be nil")
	}
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

func (h *LoanHandler) fail(r *http.Request, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.Any("error", err))
	h.logger.Log(r.Context(), logLevelFor(err), msg, attrs...)
	respondError(w, err)
}

// CreateFastLoan handles POST /loans/fast
// @Summary Request a fast loan
// @Description Requests an unsecured loan capped by the caller's salary and the chosen period.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateFastLoanRequest true "Fast loan request"
// @Success 201 {object} dto.LoanResponse "Loan created in PENDING status"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Caller is blocked"
// @Failure 422 {object} dto.ErrorResponse "Amount exceeds the eligible limit"
// @Failure 503 {object} dto.ErrorResponse "Persistence unavailable"
// @Router /loans/fast [post]
// @Security BearerAuth
func (h *LoanHandler) CreateFastLoan(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateFastLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(r, w, "Failed to decode request body", fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	period, currency, err := req.Validate()
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateFastLoan(r.Context(), actor, req.Amount, period, currency)
	if err != nil {
		h.fail(r, w, "Service failed to create fast loan", err, slog.Int64("userID", actor.ID))
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewLoanResponse(created))
}

// CreateInstallmentLoan handles POST /loans/installment
// @Summary Request an installment loan
// @Description Requests a loan against a catalog product. The principal is the product price.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateInstallmentLoanRequest true "Installment loan request"
// @Success 201 {object} dto.LoanResponse "Loan created in PENDING status"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Caller is blocked"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 422 {object} dto.ErrorResponse "Period not allowed or salary insufficient"
// @Router /loans/installment [post]
// @Security BearerAuth
func (h *LoanHandler) CreateInstallmentLoan(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateInstallmentLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(r, w, "Failed to decode request body", fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	period, currency, err := req.Validate()
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateInstallmentLoan(r.Context(), actor, req.ProductID, period, currency)
	if err != nil {
		h.fail(r, w, "Service failed to create installment loan", err, slog.Int64("userID", actor.ID), slog.Int64("productID", req.ProductID))
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewLoanResponse(created))
}

// CreateAutoLoan handles POST /loans/auto
// @Summary Request an auto loan
// @Description Prices the car through the pricing service and requests a ten-year loan against it.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateAutoLoanRequest true "Auto loan request"
// @Success 201 {object} dto.AutoLoanResponse "Car recorded and loan created in PENDING status"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Caller is blocked"
// @Failure 422 {object} dto.ErrorResponse "Period not allowed or salary insufficient"
// @Failure 503 {object} dto.ErrorResponse "Pricing service unavailable"
// @Router /loans/auto [post]
// @Security BearerAuth
func (h *LoanHandler) CreateAutoLoan(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateAutoLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(r, w, "Failed to decode request body", fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	period, currency, err := req.Validate()
	if err != nil {
		respondError(w, err)
		return
	}

	car, created, err := h.service.CreateAutoLoan(r.Context(), actor, req.CarModel, period, currency)
	if err != nil {
		h.fail(r, w, "Service failed to create auto loan", err, slog.Int64("userID", actor.ID), slog.String("carModel", req.CarModel))
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewAutoLoanResponse(car, created))
}

// ListLoans handles GET /loans
// @Summary List loans
// @Description Accountants see every loan, customers see their own. Optionally filtered by status.
// @Tags Loans
// @Produce json
// @Param status query string false "Status filter" Enums(PENDING, ACCEPTED, DECLINED, COMPLETED)
// @Success 200 {array} dto.LoanResponse "Loans visible to the caller"
// @Failure 400 {object} dto.ErrorResponse "Unknown status filter"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /loans [get]
// @Security BearerAuth
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	status, err := dto.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}

	loans, err := h.service.ListLoans(r.Context(), actor, status)
	if err != nil {
		h.fail(r, w, "Service failed to list loans", err, slog.Int64("userID", actor.ID))
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanListResponse(loans))
}

// GetLoan handles GET /loans/{loanID}
// @Summary Retrieve loan details
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanResponse "Loan details"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found or not visible to the caller"
// @Router /loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	l, err := h.service.GetLoan(r.Context(), actor, loanID)
	if err != nil {
		h.fail(r, w, "Service failed to get loan", err, slog.Int64("loanID", loanID))
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanResponse(l))
}

// ModifyLoan handles PUT /loans/{loanID}
// @Summary Modify loan terms
// @Description Owners may modify their pending loans. Accountants may modify pending or accepted loans. Eligibility is re-checked against the owner's salary.
// @Tags Loans
// @Accept json
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Param request body dto.ModifyLoanRequest true "New terms"
// @Success 200 {object} dto.LoanResponse "Updated loan"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan can no longer be modified"
// @Failure 422 {object} dto.ErrorResponse "New terms violate eligibility rules"
// @Router /loans/{loanID} [put]
// @Security BearerAuth
func (h *LoanHandler) ModifyLoan(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.ModifyLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(r, w, "Failed to decode request body", fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	terms, err := req.Validate()
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.ModifyLoan(r.Context(), actor, loanID, terms)
	if err != nil {
		h.fail(r, w, "Service failed to modify loan", err, slog.Int64("loanID", loanID), slog.Int64("userID", actor.ID))
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanResponse(updated))
}

// DeleteLoan handles DELETE /loans/{loanID}
// @Summary Delete a loan
// @Description Owners may delete their pending loans. Accountants may delete any loan.
// @Tags Loans
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 204 "Loan deleted"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan is no longer pending"
// @Router /loans/{loanID} [delete]
// @Security BearerAuth
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteLoan(r.Context(), actor, loanID); err != nil {
		h.fail(r, w, "Service failed to delete loan", err, slog.Int64("loanID", loanID), slog.Int64("userID", actor.ID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AcceptLoan handles POST /loans/{loanID}/accept
// @Summary Accept a pending loan
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanResponse "Accepted loan"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an accountant"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan is not pending"
// @Router /loans/{loanID}/accept [post]
// @Security BearerAuth
func (h *LoanHandler) AcceptLoan(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "accept", h.service.AcceptLoan)
}

// DeclineLoan handles POST /loans/{loanID}/decline
// @Summary Decline a pending loan
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanResponse "Declined loan"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an accountant"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan is not pending"
// @Router /loans/{loanID}/decline [post]
// @Security BearerAuth
func (h *LoanHandler) DeclineLoan(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "decline", h.service.DeclineLoan)
}

func (h *LoanHandler) decide(w http.ResponseWriter, r *http.Request, operation string, transition func(context.Context, *user.User, int64) (*loan.Loan, error)) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	l, err := transition(r.Context(), actor, loanID)
	if err != nil {
		h.fail(r, w, "Service failed to "+operation+" loan", err, slog.Int64("loanID", loanID), slog.Int64("userID", actor.ID))
		return
	}

	h.logger.InfoContext(r.Context(), "Loan decision recorded", slog.String("operation", operation), slog.Int64("loanID", loanID))
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(l))
}

// PayMonthlyDue handles POST /loans/{loanID}/payments
// @Summary Pay one monthly installment
// @Description Applies one monthly payment to an accepted loan. The last payment is clamped to the remaining amount.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.MonthlyPaymentResponse "Payment applied"
// @Failure 409 {object} dto.ErrorResponse "Loan not found, not accepted or not owned by the caller"
// @Router /loans/{loanID}/payments [post]
// @Security BearerAuth
func (h *LoanHandler) PayMonthlyDue(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		respondError(w, err)
		return
	}

	payment, err := h.service.PayOneMonthDue(r.Context(), actor, loanID)
	if err != nil {
		h.fail(r, w, "Service failed to apply monthly payment", err, slog.Int64("loanID", loanID), slog.Int64("userID", actor.ID))
		return
	}

	respondJSON(w, http.StatusOK, dto.NewMonthlyPaymentResponse(payment))
}
