package dto

import (
	"fmt"
	"lending-api/internal/domain/loan"
	"lending-api/internal/pkg/apperrors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CreateFastLoanRequest struct {
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	Period   string          `json:"period" example:"ONE_YEAR"`
	Currency string          `json:"currency" example:"GEL"`
}

func (r *CreateFastLoanRequest) Validate() (loan.Period, loan.Currency, error) {
	if !r.Amount.IsPositive() {
		return "", "", apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	return parseTerms(r.Period, r.Currency)
}

type CreateInstallmentLoanRequest struct {
	ProductID int64  `json:"productId" example:"3"`
	Period    string `json:"period" example:"HALF_YEAR"`
	Currency  string `json:"currency" example:"USD"`
}

func (r *CreateInstallmentLoanRequest) Validate() (loan.Period, loan.Currency, error) {
	if r.ProductID <= 0 {
		return "", "", apperrors.NewValidationError("productId", "productId must be a positive number")
	}
	return parseTerms(r.Period, r.Currency)
}

type CreateAutoLoanRequest struct {
	CarModel string `json:"carModel" example:"Toyota Prius 2018"`
	Period   string `json:"period" example:"TEN_YEARS"`
	Currency string `json:"currency" example:"EUR"`
}

func (r *CreateAutoLoanRequest) Validate() (loan.Period, loan.Currency, error) {
	if strings.TrimSpace(r.CarModel) == "" {
		return "", "", apperrors.NewValidationError("carModel", "carModel cannot be empty")
	}
	return parseTerms(r.Period, r.Currency)
}

// ModifyLoanRequest fields are optional; omitted fields keep their current value.
type ModifyLoanRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty" swaggertype:"string" example:"2000.00"`
	Period   string           `json:"period,omitempty" example:"TWO_YEARS"`
	Currency string           `json:"currency,omitempty" example:"GEL"`
}

func (r *ModifyLoanRequest) Validate() (loan.ModifyTerms, error) {
	var terms loan.ModifyTerms
	if r.Amount == nil && r.Period == "" && r.Currency == "" {
		return terms, apperrors.NewValidationError("", "at least one of amount, period or currency must be provided")
	}
	if r.Amount != nil {
		if !r.Amount.IsPositive() {
			return terms, apperrors.NewValidationError("amount", "amount must be greater than zero")
		}
		terms.Amount = r.Amount
	}
	if r.Period != "" {
		p, err := loan.ParsePeriod(r.Period)
		if err != nil {
			return terms, err
		}
		terms.Period = p
	}
	if r.Currency != "" {
		c, err := loan.ParseCurrency(r.Currency)
		if err != nil {
			return terms, err
		}
		terms.Currency = c
	}
	return terms, nil
}

func parseTerms(period, currency string) (loan.Period, loan.Currency, error) {
	if strings.TrimSpace(period) == "" {
		return "", "", apperrors.NewValidationError("period", "period is required")
	}
	p, err := loan.ParsePeriod(period)
	if err != nil {
		return "", "", err
	}
	c, err := loan.ParseCurrency(currency)
	if err != nil {
		return "", "", err
	}
	return p, c, nil
}

type LoanResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	RequestedAmount string    `json:"requestedAmount"`
	FinalAmount     string    `json:"finalAmount"`
	AmountLeft      string    `json:"amountLeft"`
	MonthlyDue      string    `json:"monthlyDue"`
	Period          string    `json:"period"`
	Currency        string    `json:"currency"`
	OwnerID         string    `json:"ownerId"`
	OwnerEmail      string    `json:"ownerEmail"`
	ProductID       *string   `json:"productId,omitempty"`
	CarID           *string   `json:"carId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewLoanResponse(l *loan.Loan) LoanResponse {
	if l == nil {
		return LoanResponse{}
	}
	resp := LoanResponse{
		ID:              strconv.FormatInt(l.ID, 10),
		Type:            string(l.Type),
		Status:          string(l.Status),
		RequestedAmount: formatMoney(l.RequestedAmount),
		FinalAmount:     formatMoney(l.FinalAmount),
		AmountLeft:      formatMoney(l.AmountLeft),
		Period:          string(l.Period),
		Currency:        string(l.Currency),
		OwnerID:         strconv.FormatInt(l.OwnerID, 10),
		OwnerEmail:      l.OwnerEmail,
		ProductID:       formatOptionalID(l.ProductID),
		CarID:           formatOptionalID(l.CarID),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if due, err := loan.MonthlyDue(l.FinalAmount, l.Period); err == nil {
		resp.MonthlyDue = formatMoney(due)
	}
	return resp
}

func NewLoanListResponse(loans []*loan.Loan) []LoanResponse {
	resp := make([]LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = NewLoanResponse(l)
	}
	return resp
}

type CarResponse struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

type AutoLoanResponse struct {
	Car  CarResponse  `json:"car"`
	Loan LoanResponse `json:"loan"`
}

func NewAutoLoanResponse(car *loan.Car, l *loan.Loan) AutoLoanResponse {
	resp := AutoLoanResponse{Loan: NewLoanResponse(l)}
	if car != nil {
		resp.Car = CarResponse{
			ID:        strconv.FormatInt(car.ID, 10),
			Model:     car.Model,
			Price:     formatMoney(car.Price),
			CreatedAt: car.CreatedAt,
		}
	}
	return resp
}

type MonthlyPaymentResponse struct {
	LoanID        string `json:"loanId"`
	InitialAmount string `json:"initialAmount"`
	AmountLeft    string `json:"amountLeft"`
	MonthlyDue    string `json:"monthlyDue"`
	PaidAmount    string `json:"paidAmount"`
	Status        string `json:"status"`
}

func NewMonthlyPaymentResponse(p *loan.MonthlyPayment) MonthlyPaymentResponse {
	return MonthlyPaymentResponse{
		LoanID:        strconv.FormatInt(p.LoanID, 10),
		InitialAmount: formatMoney(p.InitialAmount),
		AmountLeft:    formatMoney(p.AmountLeft),
		MonthlyDue:    formatMoney(p.MonthlyDue),
		PaidAmount:    formatMoney(p.PaidAmount),
		Status:        string(p.Status),
	}
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatOptionalID(id *int64) *string {
	if id == nil {
		return nil
	}
	s := strconv.FormatInt(*id, 10)
	return &s
}

// ParseStatusFilter turns the optional ?status= query value into a list filter.
func ParseStatusFilter(raw string) (*loan.Status, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	st, err := loan.ParseStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid status filter: %w", err)
	}
	return &st, nil
}
