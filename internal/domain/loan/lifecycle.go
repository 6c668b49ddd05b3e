package loan

import (
	"fmt"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"time"

	"github.com/shopspring/decimal"
)

// Transitions:
//
//	PENDING  -> ACCEPTED | DECLINED   (accountant)
//	ACCEPTED -> COMPLETED             (last monthly payment)

func (l *Loan) Accept(actor *user.User) error {
	return l.decide(actor, StatusAccepted)
}

func (l *Loan) Decline(actor *user.User) error {
	return l.decide(actor, StatusDeclined)
}

func (l *Loan) decide(actor *user.User, target Status) error {
	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	if !actor.IsAccountant() {
		return fmt.Errorf("%w: only accountants may move a loan to %s", apperrors.ErrUnauthorized, target)
	}
	if l.Status != StatusPending {
		return fmt.Errorf("%w: loan %d is %s, not %s", apperrors.ErrInvalidTransition, l.ID, l.Status, StatusPending)
	}
	l.Status = target
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// VisibleTo reports whether actor may see the loan at all. Callers report
// invisible loans as not found.
func (l *Loan) VisibleTo(actor *user.User) bool {
	return actor != nil && (actor.IsAccountant() || l.OwnerID == actor.ID)
}

// CanDelete allows accountants to delete any loan and owners to delete their
// own pending loans.
func (l *Loan) CanDelete(actor *user.User) error {
	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	if actor.IsAccountant() {
		return nil
	}
	if l.OwnerID != actor.ID {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, l.ID)
	}
	if l.Status != StatusPending {
		return fmt.Errorf("%w: loan %d is %s and can no longer be deleted", apperrors.ErrInvalidTransition, l.ID, l.Status)
	}
	return nil
}

// CanModify allows accountants to modify pending or accepted loans and owners
// to modify their own pending loans.
func (l *Loan) CanModify(actor *user.User) error {
	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	if actor.IsAccountant() {
		if l.Status != StatusPending && l.Status != StatusAccepted {
			return fmt.Errorf("%w: loan %d is %s", apperrors.ErrInvalidTransition, l.ID, l.Status)
		}
		return nil
	}
	if l.OwnerID != actor.ID {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, l.ID)
	}
	if l.Status != StatusPending {
		return fmt.Errorf("%w: loan %d is %s and can no longer be modified", apperrors.ErrInvalidTransition, l.ID, l.Status)
	}
	return nil
}

// ApplyTerms re-prices the loan and restarts amortization: any payments made
// so far are discarded.
func (l *Loan) ApplyTerms(principal decimal.Decimal, period Period, currency Currency) error {
	final, err := FinalAmount(principal, period)
	if err != nil {
		return err
	}
	l.RequestedAmount = principal
	l.Period = period
	l.Currency = currency
	l.FinalAmount = final
	l.AmountLeft = final
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyMonthlyPayment debits one installment. The last installment is clamped
// to the remaining balance and completes the loan.
func (l *Loan) ApplyMonthlyPayment(actor *user.User) (*MonthlyPayment, error) {
	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	if l.Status != StatusAccepted || (!actor.IsAccountant() && l.OwnerID != actor.ID) {
		return nil, fmt.Errorf("%w: loan %d", apperrors.ErrLoanNotAcceptedOrNotOwned, l.ID)
	}
	due, err := MonthlyDue(l.FinalAmount, l.Period)
	if err != nil {
		return nil, err
	}

	paid := decimal.Min(due, l.AmountLeft)
	l.AmountLeft = l.AmountLeft.Sub(paid)
	if !l.AmountLeft.IsPositive() {
		l.AmountLeft = decimal.Zero
		l.Status = StatusCompleted
	}
	l.UpdatedAt = time.Now().UTC()

	return &MonthlyPayment{
		LoanID:        l.ID,
		InitialAmount: l.FinalAmount,
		AmountLeft:    l.AmountLeft,
		MonthlyDue:    due,
		PaidAmount:    paid,
		Status:        l.Status,
	}, nil
}
