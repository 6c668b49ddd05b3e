package loan

import (
	"fmt"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type fastLoanBand struct {
	minSalary decimal.Decimal
	cap       decimal.Decimal
}

var fastLoanBands = map[Period]fastLoanBand{
	PeriodHalfYear:  {minSalary: decimal.NewFromInt(1000), cap: decimal.NewFromInt(2000)},
	PeriodOneYear:   {minSalary: decimal.NewFromInt(1000), cap: decimal.NewFromInt(2000)},
	PeriodTwoYears:  {minSalary: decimal.NewFromInt(1500), cap: decimal.NewFromInt(7500)},
	PeriodFiveYears: {minSalary: decimal.NewFromInt(1500), cap: decimal.NewFromInt(7500)},
	PeriodTenYears:  {minSalary: decimal.NewFromInt(3500), cap: decimal.NewFromInt(20000)},
}

var (
	installmentSalaryMultiple = decimal.NewFromInt(3)
	autoSalaryMultiple        = decimal.NewFromInt(10)

	installmentPeriods = map[Period]bool{
		PeriodHalfYear: true,
		PeriodOneYear:  true,
		PeriodTwoYears: true,
	}
)

// FastLoanCap is the largest fast-loan principal a salary qualifies for.
// A salary below the tier's threshold yields a zero cap.
func FastLoanCap(salary decimal.Decimal, period Period) (decimal.Decimal, error) {
	band, ok := fastLoanBands[period]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrInvalidLoanPeriod, string(period))
	}
	if salary.LessThan(band.minSalary) {
		return decimal.Zero, nil
	}
	return band.cap, nil
}

func CheckFastLoan(u *user.User, amount decimal.Decimal, period Period) error {
	if err := checkBorrower(u); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount", "amount must be positive")
	}
	limit, err := FastLoanCap(u.Salary, period)
	if err != nil {
		return err
	}
	if amount.GreaterThan(limit) {
		return apperrors.NewExceedsEligibleAmount(limit)
	}
	return nil
}

func CheckInstallmentLoan(u *user.User, productPrice decimal.Decimal, period Period) error {
	if err := checkBorrower(u); err != nil {
		return err
	}
	if !period.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidLoanPeriod, string(period))
	}
	if !installmentPeriods[period] {
		return apperrors.NewPeriodNotAllowed(fmt.Sprintf("installment loans run at most two years, got %s", period))
	}
	required := productPrice.Mul(installmentSalaryMultiple)
	if u.Salary.LessThan(required) {
		return apperrors.NewInsufficientSalary(required, "salary must be at least three times the product price")
	}
	return nil
}

func CheckAutoLoan(u *user.User, carPrice decimal.Decimal, period Period) error {
	if err := checkBorrower(u); err != nil {
		return err
	}
	if !period.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidLoanPeriod, string(period))
	}
	if period != PeriodTenYears {
		return apperrors.NewPeriodNotAllowed(fmt.Sprintf("auto loans are issued for %s only, got %s", PeriodTenYears, period))
	}
	if carPrice.GreaterThan(u.Salary.Mul(autoSalaryMultiple)) {
		required := carPrice.Div(autoSalaryMultiple).RoundCeil(2)
		return apperrors.NewInsufficientSalary(required, "car price cannot exceed ten monthly salaries")
	}
	return nil
}

func checkBorrower(u *user.User) error {
	if u == nil {
		return apperrors.ErrNotAuthenticated
	}
	if u.IsBlocked {
		return fmt.Errorf("%w: user %d", apperrors.ErrUserBlocked, u.ID)
	}
	return nil
}
