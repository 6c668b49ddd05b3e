package loan

import (
	"context"
	"errors"
	"lending-api/internal/domain/product"
	"lending-api/internal/domain/user"
	"lending-api/internal/event"
	"lending-api/internal/pkg/apperrors"
	"log/slog"

	"github.com/shopspring/decimal"
)

type ProductCatalog interface {
	GetProduct(ctx context.Context, productID int64) (*product.Product, error)
}

type PriceOracle interface {
	GetCarPrice(ctx context.Context, model string) (decimal.Decimal, error)
}

type UserDirectory interface {
	GetUser(ctx context.Context, userID int64) (*user.User, error)
}

// ModifyTerms carries the fields a modification may change. Zero values keep
// the current value.
type ModifyTerms struct {
	Amount   *decimal.Decimal
	Period   Period
	Currency Currency
}

type LoanService interface {
	CreateFastLoan(ctx context.Context, actor *user.User, amount decimal.Decimal, period Period, currency Currency) (*Loan, error)
	CreateInstallmentLoan(ctx context.Context, actor *user.User, productID int64, period Period, currency Currency) (*Loan, error)
	CreateAutoLoan(ctx context.Context, actor *user.User, carModel string, period Period, currency Currency) (*Car, *Loan, error)

	GetLoan(ctx context.Context, actor *user.User, loanID int64) (*Loan, error)
	ListLoans(ctx context.Context, actor *user.User, status *Status) ([]*Loan, error)
	AcceptLoan(ctx context.Context, actor *user.User, loanID int64) (*Loan, error)
	DeclineLoan(ctx context.Context, actor *user.User, loanID int64) (*Loan, error)
	DeleteLoan(ctx context.Context, actor *user.User, loanID int64) error
	ModifyLoan(ctx context.Context, actor *user.User, loanID int64, terms ModifyTerms) (*Loan, error)
	PayOneMonthDue(ctx context.Context, actor *user.User, loanID int64) (*MonthlyPayment, error)
}

var _ LoanService = (*loanServiceImpl)(nil)

type loanServiceImpl struct {
	repo     Repository
	products ProductCatalog
	prices   PriceOracle
	users    UserDirectory
	pub      event.Publisher
	logger   *slog.Logger
}

func NewLoanService(r Repository, products ProductCatalog, prices PriceOracle, users UserDirectory, pub event.Publisher, logger *slog.Logger) LoanService {
	if r == nil || products == nil || prices == nil || users == nil {
		panic("loan service dependencies cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}
	return &loanServiceImpl{
		repo:     r,
		products: products,
		prices:   prices,
		users:    users,
		pub:      pub,
		logger:   logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanServiceImpl) publish(ctx context.Context, t event.Type, l *Loan, actorID int64, paid *decimal.Decimal) {
	payload := event.LoanPayload{
		LoanID:          l.ID,
		OwnerID:         l.OwnerID,
		OwnerEmail:      l.OwnerEmail,
		ActorID:         actorID,
		LoanType:        string(l.Type),
		Status:          string(l.Status),
		Period:          string(l.Period),
		Currency:        string(l.Currency),
		RequestedAmount: l.RequestedAmount.StringFixed(2),
		FinalAmount:     l.FinalAmount.StringFixed(2),
		AmountLeft:      l.AmountLeft.StringFixed(2),
		CarID:           l.CarID,
		ProductID:       l.ProductID,
	}
	if paid != nil {
		payload.PaidAmount = paid.StringFixed(2)
	}
	if err := s.pub.Publish(ctx, event.New(t, payload)); err != nil {
		s.logger.ErrorContext(ctx, "Loan stored, but FAILED to publish event",
			slog.String("type", string(t)), slog.Int64("loanID", l.ID), slog.Any("error", err))
	}
}

// outcome is the metrics label for an operation result.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrNotAuthenticated), errors.Is(err, apperrors.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, apperrors.ErrUserBlocked):
		return "blocked"
	case errors.Is(err, apperrors.ErrExceedsEligibleAmount),
		errors.Is(err, apperrors.ErrInsufficientSalary),
		errors.Is(err, apperrors.ErrPeriodNotAllowed):
		return "ineligible"
	case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrLoanNotAcceptedOrNotOwned):
		return "rejected"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidLoanPeriod), errors.Is(err, apperrors.ErrInvalidArgument):
		return "invalid"
	case apperrors.IsRetryable(err):
		return "unavailable"
	default:
		return "error"
	}
}
