package loan

import (
	"errors"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerWithSalary(salary string) *user.User {
	return &user.User{ID: 10, Email: "nino@mail.ge", Role: user.RoleCustomer, Salary: d(salary)}
}

func requireLimit(t *testing.T, err error, kind error, limit string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	var eligErr *apperrors.EligibilityError
	require.True(t, errors.As(err, &eligErr))
	assert.True(t, d(limit).Equal(eligErr.Limit), "want limit %s, got %s", limit, eligErr.Limit)
}

func TestFastLoanCap(t *testing.T) {
	tests := []struct {
		salary string
		period Period
		want   string
	}{
		{"1000", PeriodHalfYear, "2000"},
		{"999.99", PeriodOneYear, "0"},
		{"1500", PeriodTwoYears, "7500"},
		{"1499", PeriodFiveYears, "0"},
		{"3500", PeriodTenYears, "20000"},
		{"3499", PeriodTenYears, "0"},
	}
	for _, tt := range tests {
		got, err := FastLoanCap(d(tt.salary), tt.period)
		require.NoError(t, err)
		assert.True(t, d(tt.want).Equal(got), "salary %s period %s: want %s, got %s", tt.salary, tt.period, tt.want, got)
	}

	_, err := FastLoanCap(d("5000"), Period("WEEKLY"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidLoanPeriod)
}

func TestCheckFastLoan(t *testing.T) {
	u := customerWithSalary("1000")

	err := CheckFastLoan(u, d("2001"), PeriodHalfYear)
	requireLimit(t, err, apperrors.ErrExceedsEligibleAmount, "2000")

	assert.NoError(t, CheckFastLoan(u, d("2000"), PeriodHalfYear))

	err = CheckFastLoan(u, d("100"), PeriodTwoYears)
	requireLimit(t, err, apperrors.ErrExceedsEligibleAmount, "0")

	assert.ErrorIs(t, CheckFastLoan(u, decimal.Zero, PeriodHalfYear), apperrors.ErrValidation)
}

func TestCheckInstallmentLoan(t *testing.T) {
	price := d("1000")

	err := CheckInstallmentLoan(customerWithSalary("2999"), price, PeriodOneYear)
	requireLimit(t, err, apperrors.ErrInsufficientSalary, "3000")

	assert.NoError(t, CheckInstallmentLoan(customerWithSalary("3000"), price, PeriodOneYear))

	for _, p := range []Period{PeriodFiveYears, PeriodTenYears} {
		assert.ErrorIs(t, CheckInstallmentLoan(customerWithSalary("99999"), price, p), apperrors.ErrPeriodNotAllowed)
	}
	assert.ErrorIs(t, CheckInstallmentLoan(customerWithSalary("99999"), price, Period("X")), apperrors.ErrInvalidLoanPeriod)
}

func TestCheckAutoLoan(t *testing.T) {
	price := d("50000")

	err := CheckAutoLoan(customerWithSalary("4999"), price, PeriodTenYears)
	requireLimit(t, err, apperrors.ErrInsufficientSalary, "5000")

	assert.NoError(t, CheckAutoLoan(customerWithSalary("5000"), price, PeriodTenYears))

	for _, p := range []Period{PeriodHalfYear, PeriodOneYear, PeriodTwoYears, PeriodFiveYears} {
		assert.ErrorIs(t, CheckAutoLoan(customerWithSalary("99999"), price, p), apperrors.ErrPeriodNotAllowed)
	}
}

func TestBlockedUserIsRejectedByEveryPolicy(t *testing.T) {
	u := customerWithSalary("100000")
	u.IsBlocked = true

	assert.ErrorIs(t, CheckFastLoan(u, d("100"), PeriodHalfYear), apperrors.ErrUserBlocked)
	assert.ErrorIs(t, CheckInstallmentLoan(u, d("100"), PeriodHalfYear), apperrors.ErrUserBlocked)
	assert.ErrorIs(t, CheckAutoLoan(u, d("100"), PeriodTenYears), apperrors.ErrUserBlocked)
	assert.ErrorIs(t, CheckFastLoan(nil, d("100"), PeriodHalfYear), apperrors.ErrNotAuthenticated)
}
