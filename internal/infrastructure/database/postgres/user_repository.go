package postgres

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, first_name, last_name, salary, role, is_blocked, created_at, updated_at`

type UserRepository struct {
	db      DBPool
	timeout time.Duration
	logger  *slog.Logger
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db DBPool, queryTimeout time.Duration, logger *slog.Logger) *UserRepository {
	if db == nil {
		panic("DBPool cannot be nil for UserRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewUserRepository, using default stderr handler")
	}
	return &UserRepository{
		db:      db,
		timeout: queryTimeout,
		logger:  logger.With("component", "UserRepository"),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, userID int64) (_ *user.User, err error) {
	defer observe("user_find_by_id", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
		}
		r.logger.ErrorContext(ctx, "Failed to find user by ID", slog.Int64("userID", userID), slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (_ *user.User, err error) {
	defer observe("user_find_by_email", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, email)
		}
		r.logger.ErrorContext(ctx, "Failed to find user by email", slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}
	return u, nil
}

func (r *UserRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) (err error) {
	defer observe("user_set_blocked", time.Now(), &err)
	return r.execSingle(ctx, `UPDATE users SET is_blocked = $1, updated_at = NOW() WHERE id = $2`, userID, blocked, userID)
}

func (r *UserRepository) SetRole(ctx context.Context, userID int64, role user.Role) (err error) {
	defer observe("user_set_role", time.Now(), &err)
	return r.execSingle(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, userID, string(role), userID)
}

func (r *UserRepository) execSingle(ctx context.Context, query string, userID int64, args ...any) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update user", slog.Int64("userID", userID), slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		u    user.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Salary, &role, &u.IsBlocked, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = user.Role(role)
	return &u, nil
}
