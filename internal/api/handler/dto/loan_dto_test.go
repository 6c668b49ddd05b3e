package dto

import (
	"errors"
	"lending-api/internal/domain/loan"
	"lending-api/internal/pkg/apperrors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFastLoanRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateFastLoanRequest
		wantErr   error
		wantField string
	}{
		{"valid", CreateFastLoanRequest{Amount: decimal.NewFromInt(1000), Period: "one_year", Currency: "gel"}, nil, ""},
		{"zero amount", CreateFastLoanRequest{Amount: decimal.Zero, Period: "ONE_YEAR", Currency: "GEL"}, apperrors.ErrValidation, "amount"},
		{"missing period", CreateFastLoanRequest{Amount: decimal.NewFromInt(1), Currency: "GEL"}, apperrors.ErrValidation, "period"},
		{"unknown period", CreateFastLoanRequest{Amount: decimal.NewFromInt(1), Period: "THREE_YEARS", Currency: "GEL"}, apperrors.ErrInvalidLoanPeriod, ""},
		{"unknown currency", CreateFastLoanRequest{Amount: decimal.NewFromInt(1), Period: "ONE_YEAR", Currency: "JPY"}, apperrors.ErrValidation, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, currency, err := tt.req.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, loan.PeriodOneYear, period)
				assert.Equal(t, loan.CurrencyGEL, currency)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantField != "" {
				var ve *apperrors.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantField, ve.Field)
			}
		})
	}
}

func TestCreateInstallmentAndAutoRequests_Validate(t *testing.T) {
	_, _, err := (&CreateInstallmentLoanRequest{ProductID: 0, Period: "HALF_YEAR", Currency: "USD"}).Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	period, _, err := (&CreateInstallmentLoanRequest{ProductID: 3, Period: "HALF_YEAR", Currency: "USD"}).Validate()
	require.NoError(t, err)
	assert.Equal(t, loan.PeriodHalfYear, period)

	_, _, err = (&CreateAutoLoanRequest{CarModel: "   ", Period: "TEN_YEARS", Currency: "EUR"}).Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, currency, err := (&CreateAutoLoanRequest{CarModel: "Toyota Prius", Period: "TEN_YEARS", Currency: "EUR"}).Validate()
	require.NoError(t, err)
	assert.Equal(t, loan.CurrencyEUR, currency)
}

func TestModifyLoanRequest_Validate(t *testing.T) {
	_, err := (&ModifyLoanRequest{}).Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	negative := decimal.NewFromInt(-5)
	_, err = (&ModifyLoanRequest{Amount: &negative}).Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = (&ModifyLoanRequest{Period: "FOREVER"}).Validate()
	assert.ErrorIs(t, err, apperrors.ErrInvalidLoanPeriod)

	amount := decimal.NewFromInt(2000)
	terms, err := (&ModifyLoanRequest{Amount: &amount, Currency: "usd"}).Validate()
	require.NoError(t, err)
	require.NotNil(t, terms.Amount)
	assert.True(t, terms.Amount.Equal(amount))
	assert.Equal(t, loan.Period(""), terms.Period)
	assert.Equal(t, loan.CurrencyUSD, terms.Currency)
}

func TestNewLoanResponse(t *testing.T) {
	productID := int64(3)
	l := &loan.Loan{
		ID:              42,
		RequestedAmount: decimal.NewFromInt(1000),
		FinalAmount:     decimal.NewFromInt(1100),
		AmountLeft:      decimal.NewFromInt(1100),
		Period:          loan.PeriodOneYear,
		Type:            loan.TypeInstallment,
		Currency:        loan.CurrencyGEL,
		Status:          loan.StatusPending,
		OwnerID:         10,
		OwnerEmail:      "nika@mail.ge",
		ProductID:       &productID,
	}

	resp := NewLoanResponse(l)

	assert.Equal(t, "42", resp.ID)
	assert.Equal(t, "1000.00", resp.RequestedAmount)
	assert.Equal(t, "1100.00", resp.FinalAmount)
	assert.Equal(t, "91.67", resp.MonthlyDue)
	require.NotNil(t, resp.ProductID)
	assert.Equal(t, "3", *resp.ProductID)
	assert.Nil(t, resp.CarID)
	assert.Equal(t, LoanResponse{}, NewLoanResponse(nil))
}

func TestParseStatusFilter(t *testing.T) {
	st, err := ParseStatusFilter("")
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = ParseStatusFilter("accepted")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, loan.StatusAccepted, *st)

	_, err = ParseStatusFilter("LOST")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
