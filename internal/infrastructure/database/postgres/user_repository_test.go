package postgres

import (
	"context"
	"errors"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "first_name", "last_name", "salary", "role", "is_blocked", "created_at", "updated_at"}

func setupUserRepo(t *testing.T) (context.Context, *UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}
	return context.Background(), NewUserRepository(mockPool, time.Second, logger), mockPool
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(2), "nino@mail.ge", "Nino", "Beridze", decimal.NewFromInt(1500), "CUSTOMER", false, now, now))

	u, err := repo.FindByID(ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, "Nino", u.FirstName)
	assert.Equal(t, user.RoleCustomer, u.Role)
	assert.Equal(t, "1500", u.Salary.String())
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUserRepository_FindByEmailNotFound(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(email) = lower($1)")).
		WithArgs("ghost@mail.ge").
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	_, err := repo.FindByEmail(ctx, "ghost@mail.ge")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_SetBlocked(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_blocked = $1")).
		WithArgs(true, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_blocked = $1")).
		WithArgs(false, int64(6)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.NoError(t, repo.SetBlocked(ctx, 5, true))
	assert.ErrorIs(t, repo.SetBlocked(ctx, 6, false), apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUserRepository_SetRole(t *testing.T) {
	ctx, repo, mockPool := setupUserRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1")).
		WithArgs("ACCOUNTANT", int64(5)).
		WillReturnError(errors.New("connection reset"))

	err := repo.SetRole(ctx, 5, user.RoleAccountant)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.True(t, apperrors.IsRetryable(err))
}
