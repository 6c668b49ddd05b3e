package user

import (
	"context"
)

// Repository returns errors wrapping apperrors.ErrNotFound for unknown ids and emails.
type Repository interface {
	FindByID(ctx context.Context, userID int64) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)

	SetBlocked(ctx context.Context, userID int64, blocked bool) error

	SetRole(ctx context.Context, userID int64, role Role) error
}
