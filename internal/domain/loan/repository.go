package loan

import (
	"context"
)

type ListFilter struct {
	OwnerID *int64
	Status  *Status
}

// Repository persists loans and their car collateral. Lookups of unknown ids
// return errors wrapping apperrors.ErrNotFound; Update and Delete return
// apperrors.ErrConflict when the stored version no longer matches.
type Repository interface {
	Create(ctx context.Context, loan *Loan) error

	// CreateWithCar stores car and loan in one transaction and links them.
	CreateWithCar(ctx context.Context, car *Car, loan *Loan) error

	FindByID(ctx context.Context, loanID int64) (*Loan, error)

	List(ctx context.Context, filter ListFilter) ([]*Loan, error)

	Update(ctx context.Context, loan *Loan) error

	Delete(ctx context.Context, loanID int64, version int64) error
}
