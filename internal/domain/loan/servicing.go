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
)

func (s *loanServiceImpl) GetLoan(ctx context.Context, actor *user.User, loanID int64) (*Loan, error) {
	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	l, err := s.fetch(ctx, "getLoan", actor, loanID)
	if err != nil {
		return nil, err
	}
	if !l.VisibleTo(actor) {
		return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
	}
	return l, nil
}

func (s *loanServiceImpl) ListLoans(ctx context.Context, actor *user.User, status *Status) ([]*Loan, error) {
	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	filter := ListFilter{Status: status}
	if !actor.IsAccountant() {
		ownerID := actor.ID
		filter.OwnerID = &ownerID
	}
	loans, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", slog.String("operation", "listLoans"), slog.Int64("actorID", actor.ID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	if loans == nil {
		loans = []*Loan{}
	}
	return loans, nil
}

func (s *loanServiceImpl) AcceptLoan(ctx context.Context, actor *user.User, loanID int64) (*Loan, error) {
	return s.decide(ctx, "accept", actor, loanID, (*Loan).Accept, event.LoanAccepted)
}

func (s *loanServiceImpl) DeclineLoan(ctx context.Context, actor *user.User, loanID int64) (*Loan, error) {
	return s.decide(ctx, "decline", actor, loanID, (*Loan).Decline, event.LoanDeclined)
}

func (s *loanServiceImpl) decide(ctx context.Context, op string, actor *user.User, loanID int64, transition func(*Loan, *user.User) error, t event.Type) (l *Loan, err error) {
	defer func() { monitoring.RecordTransition(op, outcome(err)) }()

	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	// Role first: a customer is refused whatever state the loan is in.
	if !actor.IsAccountant() {
		return nil, fmt.Errorf("%w: only accountants may %s loans", apperrors.ErrUnauthorized, op)
	}
	l, err = s.fetch(ctx, op, actor, loanID)
	if err != nil {
		return nil, err
	}
	if err = transition(l, actor); err != nil {
		return nil, err
	}
	if err = s.save(ctx, op, actor, l); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Loan status changed", slog.String("operation", op), slog.Int64("loanID", l.ID), slog.String("status", string(l.Status)))
	s.publish(ctx, t, l, actor.ID, nil)
	return l, nil
}

func (s *loanServiceImpl) DeleteLoan(ctx context.Context, actor *user.User, loanID int64) (err error) {
	defer func() { monitoring.RecordTransition("delete", outcome(err)) }()

	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	l, err := s.fetch(ctx, "delete", actor, loanID)
	if err != nil {
		return err
	}
	if err = l.CanDelete(actor); err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, l.ID, l.Version); err != nil {
		return s.writeFailure(ctx, "delete", actor, l.ID, err)
	}

	s.logger.InfoContext(ctx, "Loan deleted", slog.Int64("loanID", l.ID), slog.Int64("actorID", actor.ID))
	s.publish(ctx, event.LoanDeleted, l, actor.ID, nil)
	return nil
}

func (s *loanServiceImpl) ModifyLoan(ctx context.Context, actor *user.User, loanID int64, terms ModifyTerms) (l *Loan, err error) {
	defer func() { monitoring.RecordTransition("modify", outcome(err)) }()

	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	l, err = s.fetch(ctx, "modify", actor, loanID)
	if err != nil {
		return nil, err
	}
	if err = l.CanModify(actor); err != nil {
		return nil, err
	}

	principal, period, currency := l.RequestedAmount, l.Period, l.Currency
	if terms.Period != "" {
		period = terms.Period
	}
	if terms.Currency != "" {
		currency = terms.Currency
	}
	if terms.Amount != nil && !terms.Amount.Equal(principal) {
		if l.Type != TypeFast {
			return nil, apperrors.NewValidationError("amount", "the amount of a collateral-backed loan follows its collateral price")
		}
		principal = *terms.Amount
	}

	owner := actor
	if l.OwnerID != actor.ID {
		owner, err = s.users.GetUser(ctx, l.OwnerID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to resolve loan owner", slog.Int64("loanID", l.ID), slog.Int64("ownerID", l.OwnerID), slog.Any("error", err))
			return nil, fmt.Errorf("failed to resolve owner of loan %d: %w", l.ID, err)
		}
	}
	switch l.Type {
	case TypeFast:
		err = CheckFastLoan(owner, principal, period)
	case TypeInstallment:
		err = CheckInstallmentLoan(owner, principal, period)
	case TypeAuto:
		err = CheckAutoLoan(owner, principal, period)
	default:
		err = l.CheckCollateral()
	}
	if err != nil {
		return nil, err
	}

	if err = l.ApplyTerms(principal, period, currency); err != nil {
		return nil, err
	}
	if err = s.save(ctx, "modify", actor, l); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Loan modified", slog.Int64("loanID", l.ID), slog.Int64("actorID", actor.ID), slog.String("finalAmount", l.FinalAmount.String()))
	s.publish(ctx, event.LoanModified, l, actor.ID, nil)
	return l, nil
}

func (s *loanServiceImpl) PayOneMonthDue(ctx context.Context, actor *user.User, loanID int64) (payment *MonthlyPayment, err error) {
	defer func() { monitoring.RecordPayment(outcome(err)) }()

	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	l, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %d", apperrors.ErrLoanNotAcceptedOrNotOwned, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to load loan", slog.String("operation", "pay"), slog.Int64("loanID", loanID), slog.Int64("actorID", actor.ID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load loan %d: %w", loanID, err)
	}
	payment, err = l.ApplyMonthlyPayment(actor)
	if err != nil {
		return nil, err
	}
	if err = s.save(ctx, "pay", actor, l); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Monthly payment applied", slog.Int64("loanID", l.ID), slog.String("paid", payment.PaidAmount.String()), slog.String("amountLeft", payment.AmountLeft.String()))
	s.publish(ctx, event.LoanPaymentApplied, l, actor.ID, &payment.PaidAmount)
	if l.Status == StatusCompleted {
		s.publish(ctx, event.LoanCompleted, l, actor.ID, nil)
	}
	return payment, nil
}

func (s *loanServiceImpl) fetch(ctx context.Context, op string, actor *user.User, loanID int64) (*Loan, error) {
	l, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to load loan", slog.String("operation", op), slog.Int64("loanID", loanID), slog.Int64("actorID", actor.ID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load loan %d: %w", loanID, err)
	}
	return l, nil
}

func (s *loanServiceImpl) save(ctx context.Context, op string, actor *user.User, l *Loan) error {
	if err := s.repo.Update(ctx, l); err != nil {
		return s.writeFailure(ctx, op, actor, l.ID, err)
	}
	return nil
}

// writeFailure turns a lost optimistic-lock race into InvalidTransition.
func (s *loanServiceImpl) writeFailure(ctx context.Context, op string, actor *user.User, loanID int64, err error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		s.logger.WarnContext(ctx, "Lost concurrent update race", slog.String("operation", op), slog.Int64("loanID", loanID), slog.Int64("actorID", actor.ID))
		return fmt.Errorf("%w: loan %d was changed concurrently", apperrors.ErrInvalidTransition, loanID)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	s.logger.ErrorContext(ctx, "Failed to persist loan", slog.String("operation", op), slog.Int64("loanID", loanID), slog.Int64("actorID", actor.ID), slog.Any("error", err))
	return fmt.Errorf("failed to %s loan %d: %w", op, loanID, err)
}
