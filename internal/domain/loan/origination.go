package loan

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/domain/user"
	"lending-api/internal/event"
	"lending-api/internal/infrastructure/monitoring"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

func (s *loanServiceImpl) CreateFastLoan(ctx context.Context, actor *user.User, amount decimal.Decimal, period Period, currency Currency) (l *Loan, err error) {
	defer func() { monitoring.RecordOrigination(string(TypeFast), outcome(err)) }()

	if err = CheckFastLoan(actor, amount, period); err != nil {
		return nil, err
	}
	logCtx := s.logger.With(slog.String("operation", "createFastLoan"), slog.Int64("actorID", actor.ID))

	l, err = newLoan(ownerRef{id: actor.ID, email: actor.Email}, TypeFast, amount, period, currency)
	if err != nil {
		return nil, err
	}
	if err = s.repo.Create(ctx, l); err != nil {
		logCtx.ErrorContext(ctx, "Failed to save fast loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save fast loan: %w", err)
	}

	logCtx.InfoContext(ctx, "Fast loan created", slog.Int64("loanID", l.ID), slog.String("finalAmount", l.FinalAmount.String()))
	s.publish(ctx, event.LoanCreated, l, actor.ID, nil)
	return l, nil
}

func (s *loanServiceImpl) CreateInstallmentLoan(ctx context.Context, actor *user.User, productID int64, period Period, currency Currency) (l *Loan, err error) {
	defer func() { monitoring.RecordOrigination(string(TypeInstallment), outcome(err)) }()

	if err = checkBorrower(actor); err != nil {
		return nil, err
	}
	logCtx := s.logger.With(slog.String("operation", "createInstallmentLoan"), slog.Int64("actorID", actor.ID), slog.Int64("productID", productID))

	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logCtx.ErrorContext(ctx, "Failed to resolve product", slog.Any("error", err))
		}
		return nil, fmt.Errorf("failed to resolve product %d: %w", productID, err)
	}
	if err = CheckInstallmentLoan(actor, p.Price, period); err != nil {
		return nil, err
	}

	l, err = newLoan(ownerRef{id: actor.ID, email: actor.Email}, TypeInstallment, p.Price, period, currency)
	if err != nil {
		return nil, err
	}
	l.ProductID = &p.ID
	if err = s.repo.Create(ctx, l); err != nil {
		logCtx.ErrorContext(ctx, "Failed to save installment loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save installment loan: %w", err)
	}

	logCtx.InfoContext(ctx, "Installment loan created", slog.Int64("loanID", l.ID))
	s.publish(ctx, event.LoanCreated, l, actor.ID, nil)
	return l, nil
}

// CreateAutoLoan prices the car and checks eligibility before writing
// anything, then stores car and loan together.
func (s *loanServiceImpl) CreateAutoLoan(ctx context.Context, actor *user.User, carModel string, period Period, currency Currency) (car *Car, l *Loan, err error) {
	defer func() { monitoring.RecordOrigination(string(TypeAuto), outcome(err)) }()

	if err = checkBorrower(actor); err != nil {
		return nil, nil, err
	}
	carModel = strings.TrimSpace(carModel)
	if carModel == "" {
		return nil, nil, apperrors.NewValidationError("carModel", "car model cannot be empty")
	}
	if !period.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidLoanPeriod, string(period))
	}
	logCtx := s.logger.With(slog.String("operation", "createAutoLoan"), slog.Int64("actorID", actor.ID), slog.String("carModel", carModel))

	price, err := s.prices.GetCarPrice(ctx, carModel)
	if err != nil {
		logCtx.WarnContext(ctx, "Car pricing failed", slog.Any("error", err))
		if !errors.Is(err, apperrors.ErrPricingUnavailable) {
			err = fmt.Errorf("%w: %w", apperrors.ErrPricingUnavailable, err)
		}
		return nil, nil, err
	}
	if err = CheckAutoLoan(actor, price, period); err != nil {
		return nil, nil, err
	}

	l, err = newLoan(ownerRef{id: actor.ID, email: actor.Email}, TypeAuto, price, period, currency)
	if err != nil {
		return nil, nil, err
	}
	car = &Car{Model: carModel, Price: price, CreatedAt: l.CreatedAt}
	if err = s.repo.CreateWithCar(ctx, car, l); err != nil {
		logCtx.ErrorContext(ctx, "Failed to save car and auto loan", slog.Any("error", err))
		return nil, nil, fmt.Errorf("failed to save auto loan: %w", err)
	}

	logCtx.InfoContext(ctx, "Auto loan created", slog.Int64("loanID", l.ID), slog.Int64("carID", car.ID), slog.String("price", price.String()))
	s.publish(ctx, event.LoanCreated, l, actor.ID, nil)
	return car, l, nil
}
