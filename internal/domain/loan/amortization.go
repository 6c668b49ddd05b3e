package loan

import (
	"fmt"
	"lending-api/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// FinalAmount adds the tier markup to principal. The markup is truncated to
// whole currency units; the principal keeps its cents.
func FinalAmount(principal decimal.Decimal, period Period) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: principal cannot be negative", apperrors.ErrInvalidArgument)
	}
	rate, err := period.MarkupRate()
	if err != nil {
		return decimal.Zero, err
	}
	markup := principal.Mul(rate).Truncate(0)
	return principal.Add(markup), nil
}

// MonthlyDue spreads finalAmount over the tier's months, rounded up to cents
// so that Months() installments always cover the balance.
func MonthlyDue(finalAmount decimal.Decimal, period Period) (decimal.Decimal, error) {
	months, err := period.Months()
	if err != nil {
		return decimal.Zero, err
	}
	return finalAmount.Div(decimal.NewFromInt(int64(months))).RoundCeil(2), nil
}
