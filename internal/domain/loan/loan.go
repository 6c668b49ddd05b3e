package loan

import (
	"fmt"
	"lending-api/internal/pkg/apperrors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodHalfYear  Period = "HALF_YEAR"
	PeriodOneYear   Period = "ONE_YEAR"
	PeriodTwoYears  Period = "TWO_YEARS"
	PeriodFiveYears Period = "FIVE_YEARS"
	PeriodTenYears  Period = "TEN_YEARS"
)

type periodTier struct {
	months int
	markup decimal.Decimal
}

var periodTiers = map[Period]periodTier{
	PeriodHalfYear:  {months: 6, markup: decimal.RequireFromString("0.05")},
	PeriodOneYear:   {months: 12, markup: decimal.RequireFromString("0.10")},
	PeriodTwoYears:  {months: 24, markup: decimal.RequireFromString("0.15")},
	PeriodFiveYears: {months: 60, markup: decimal.RequireFromString("0.20")},
	PeriodTenYears:  {months: 120, markup: decimal.RequireFromString("0.30")},
}

func (p Period) tier() (periodTier, error) {
	t, ok := periodTiers[p]
	if !ok {
		return periodTier{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidLoanPeriod, string(p))
	}
	return t, nil
}

// Months is the number of monthly installments in the tier.
func (p Period) Months() (int, error) {
	t, err := p.tier()
	return t.months, err
}

// MarkupRate is the flat share of the principal added as interest.
func (p Period) MarkupRate() (decimal.Decimal, error) {
	t, err := p.tier()
	return t.markup, err
}

func (p Period) Valid() bool {
	_, ok := periodTiers[p]
	return ok
}

func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidLoanPeriod, s)
	}
	return p, nil
}

type Type string

const (
	TypeFast        Type = "FAST"
	TypeAuto        Type = "AUTO"
	TypeInstallment Type = "INSTALLMENT"
)

type Currency string

const (
	CurrencyGEL Currency = "GEL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CurrencyGEL, CurrencyUSD, CurrencyEUR:
		return c, nil
	}
	return "", apperrors.NewValidationError("currency", fmt.Sprintf("unsupported currency %q", s))
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusDeclined  Status = "DECLINED"
	StatusCompleted Status = "COMPLETED"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCompleted:
		return st, nil
	}
	return "", apperrors.NewValidationError("status", fmt.Sprintf("unknown loan status %q", s))
}

type Loan struct {
	ID              int64
	RequestedAmount decimal.Decimal
	FinalAmount     decimal.Decimal
	AmountLeft      decimal.Decimal
	Period          Period
	Type            Type
	Currency        Currency
	Status          Status
	OwnerID         int64
	OwnerEmail      string
	ProductID       *int64
	CarID           *int64
	// Version is bumped on every write and guards updates against lost races.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Car is the collateral record priced once when an auto loan is requested.
type Car struct {
	ID        int64
	Model     string
	Price     decimal.Decimal
	CreatedAt time.Time
}

// MonthlyPayment is the result of applying one installment to a loan.
type MonthlyPayment struct {
	LoanID        int64
	InitialAmount decimal.Decimal
	AmountLeft    decimal.Decimal
	MonthlyDue    decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        Status
}

func newLoan(owner ownerRef, loanType Type, principal decimal.Decimal, period Period, currency Currency) (*Loan, error) {
	final, err := FinalAmount(principal, period)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Loan{
		RequestedAmount: principal,
		FinalAmount:     final,
		AmountLeft:      final,
		Period:          period,
		Type:            loanType,
		Currency:        currency,
		Status:          StatusPending,
		OwnerID:         owner.id,
		OwnerEmail:      owner.email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

type ownerRef struct {
	id    int64
	email string
}

// CheckCollateral verifies the collateral reference matches the loan type.
func (l *Loan) CheckCollateral() error {
	switch l.Type {
	case TypeFast:
		if l.ProductID != nil || l.CarID != nil {
			return fmt.Errorf("%w: fast loan cannot reference collateral", apperrors.ErrInvalidArgument)
		}
	case TypeInstallment:
		if l.ProductID == nil || l.CarID != nil {
			return fmt.Errorf("%w: installment loan must reference exactly one product", apperrors.ErrInvalidArgument)
		}
	case TypeAuto:
		if l.CarID == nil || l.ProductID != nil {
			return fmt.Errorf("%w: auto loan must reference exactly one car", apperrors.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unknown loan type %q", apperrors.ErrInvalidArgument, string(l.Type))
	}
	return nil
}
