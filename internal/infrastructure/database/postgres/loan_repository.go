package postgres

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/domain/loan"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const loanColumns = `id, requested_amount, final_amount, amount_left, loan_period, loan_type, loan_currency,
        loan_status, owner_id, owner_email, product_id, car_id, version, created_at, updated_at`

type LoanRepository struct {
	db      DBPool
	timeout time.Duration
	logger  *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, queryTimeout time.Duration, logger *slog.Logger) *LoanRepository {
	if db == nil {
		panic("DBPool cannot be nil for LoanRepository")
	}
	return &LoanRepository{db: db, timeout: queryTimeout, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) (err error) {
	defer observe("loan_create", time.Now(), &err)
	if err := l.CheckCollateral(); err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.insertLoan(ctx, r.db, l); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", l.ID)
	return nil
}

func (r *LoanRepository) CreateWithCar(ctx context.Context, car *loan.Car, l *loan.Loan) (err error) {
	defer observe("loan_create_with_car", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer r.RollbackTx(ctx, tx)

	carSQL := `
        INSERT INTO cars (model, price, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, created_at`

	if err = tx.QueryRow(ctx, carSQL, car.Model, car.Price).Scan(&car.ID, &car.CreatedAt); err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert car", "error", err)
		return fmt.Errorf("%w: failed to insert car: %w", apperrors.ErrDatabase, err)
	}

	carID := car.ID
	l.CarID = &carID
	l.ProductID = nil
	if err = l.CheckCollateral(); err != nil {
		return err
	}
	if err = r.insertLoan(ctx, tx, l); err != nil {
		return err
	}

	if err = r.CommitTx(ctx, tx); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Car and loan created in DB", "loan_id", l.ID, "car_id", car.ID)
	return nil
}

func (r *LoanRepository) insertLoan(ctx context.Context, q queryRower, l *loan.Loan) error {
	loanSQL := `
        INSERT INTO loans (requested_amount, final_amount, amount_left, loan_period, loan_type, loan_currency,
            loan_status, owner_id, owner_email, product_id, car_id, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, NOW(), NOW())
        RETURNING id, version, created_at, updated_at`

	err := q.QueryRow(ctx, loanSQL,
		l.RequestedAmount, l.FinalAmount, l.AmountLeft, string(l.Period), string(l.Type), string(l.Currency),
		string(l.Status), l.OwnerID, l.OwnerEmail, l.ProductID, l.CarID,
	).Scan(&l.ID, &l.Version, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, loanID int64) (_ *loan.Loan, err error) {
	defer observe("loan_find_by_id", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	l, err := scanLoan(r.db.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return l, nil
}

func (r *LoanRepository) List(ctx context.Context, filter loan.ListFilter) (_ []*loan.Loan, err error) {
	defer observe("loan_list", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args := buildListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loans", "error", err)
		return nil, fmt.Errorf("%w: failed to query loans: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]*loan.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "error", err)
			return nil, fmt.Errorf("%w: failed scanning loan: %w", apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", "error", err)
		return nil, fmt.Errorf("%w: error iterating loans: %w", apperrors.ErrDatabase, err)
	}
	return loans, nil
}

func buildListQuery(filter loan.ListFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("loan_status = $%d", len(args)))
	}

	query := `SELECT ` + loanColumns + ` FROM loans`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	return query + ` ORDER BY id`, args
}

// Update writes the mutable loan fields if the stored version still matches
// l.Version, then advances l.Version.
func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan) (err error) {
	defer observe("loan_update", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
        UPDATE loans
        SET requested_amount = $1,
            final_amount = $2,
            amount_left = $3,
            loan_period = $4,
            loan_currency = $5,
            loan_status = $6,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $7 AND version = $8`

	tag, err := r.db.Exec(ctx, query,
		l.RequestedAmount, l.FinalAmount, l.AmountLeft, string(l.Period), string(l.Currency), string(l.Status),
		l.ID, l.Version,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan", "loan_id", l.ID, "error", err)
		return translateDBError(err, r.logger)
	}
	if tag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Loan update lost a version race", "loan_id", l.ID, "version", l.Version)
		return fmt.Errorf("%w: loan %d at version %d", apperrors.ErrConflict, l.ID, l.Version)
	}
	l.Version++
	return nil
}

func (r *LoanRepository) Delete(ctx context.Context, loanID int64, version int64) (err error) {
	defer observe("loan_delete", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM loans WHERE id = $1 AND version = $2`, loanID, version)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete loan", "loan_id", loanID, "error", err)
		return translateDBError(err, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %d at version %d", apperrors.ErrConflict, loanID, version)
	}
	return nil
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var (
		l                                  loan.Loan
		period, loanType, currency, status string
	)
	err := row.Scan(
		&l.ID, &l.RequestedAmount, &l.FinalAmount, &l.AmountLeft, &period, &loanType, &currency,
		&status, &l.OwnerID, &l.OwnerEmail, &l.ProductID, &l.CarID, &l.Version, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Period = loan.Period(period)
	l.Type = loan.Type(loanType)
	l.Currency = loan.Currency(currency)
	l.Status = loan.Status(status)
	return &l, nil
}
