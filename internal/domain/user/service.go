package user

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/event"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"strings"
)

type Service interface {
	// Authenticate resolves the acting user for an authenticated identity.
	Authenticate(ctx context.Context, userID int64) (*User, error)
	GetUser(ctx context.Context, userID int64) (*User, error)
	GetUserByEmail(ctx context.Context, actor *User, email string) (*User, error)
	BlockUser(ctx context.Context, actor *User, email string) (*User, error)
	UnblockUser(ctx context.Context, actor *User, email string) (*User, error)
	MakeAccountant(ctx context.Context, actor *User, email string) (*User, error)
}

var _ Service = (*userService)(nil)

type userService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
}

func NewUserService(repo Repository, pub event.Publisher, logger *slog.Logger) Service {
	if repo == nil {
		panic("user repository cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}
	return &userService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "userService")),
	}
}

func (s *userService) Authenticate(ctx context.Context, userID int64) (*User, error) {
	if userID <= 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Token subject does not resolve to a user", slog.Int64("userID", userID))
			return nil, fmt.Errorf("%w: user %d no longer exists", apperrors.ErrNotAuthenticated, userID)
		}
		s.logger.ErrorContext(ctx, "Failed to resolve acting user", slog.Int64("userID", userID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to find user", slog.Int64("userID", userID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return u, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, actor *User, email string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email cannot be empty")
	}
	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	if !actor.IsAccountant() && !strings.EqualFold(actor.Email, email) {
		s.logger.WarnContext(ctx, "Customer attempted to look up another user", slog.Int64("actorID", actor.ID))
		return nil, fmt.Errorf("%w: customers may only look up themselves", apperrors.ErrUnauthorized)
	}
	return s.findByEmail(ctx, email)
}

func (s *userService) BlockUser(ctx context.Context, actor *User, email string) (*User, error) {
	return s.administer(ctx, actor, email, "block", func(ctx context.Context, u *User) (event.Type, error) {
		if err := s.repo.SetBlocked(ctx, u.ID, true); err != nil {
			return "", err
		}
		u.Block()
		return event.UserBlocked, nil
	})
}

func (s *userService) UnblockUser(ctx context.Context, actor *User, email string) (*User, error) {
	return s.administer(ctx, actor, email, "unblock", func(ctx context.Context, u *User) (event.Type, error) {
		if err := s.repo.SetBlocked(ctx, u.ID, false); err != nil {
			return "", err
		}
		u.Unblock()
		return event.UserUnblocked, nil
	})
}

func (s *userService) MakeAccountant(ctx context.Context, actor *User, email string) (*User, error) {
	return s.administer(ctx, actor, email, "make_accountant", func(ctx context.Context, u *User) (event.Type, error) {
		if err := s.repo.SetRole(ctx, u.ID, RoleAccountant); err != nil {
			return "", err
		}
		u.Promote()
		return event.UserPromoted, nil
	})
}

func (s *userService) administer(ctx context.Context, actor *User, email, operation string, apply func(context.Context, *User) (event.Type, error)) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email cannot be empty")
	}
	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	logCtx := s.logger.With(slog.String("operation", operation), slog.Int64("actorID", actor.ID))
	if !actor.IsAccountant() {
		logCtx.WarnContext(ctx, "Non-accountant attempted user administration")
		return nil, fmt.Errorf("%w: only accountants may %s users", apperrors.ErrUnauthorized, operation)
	}

	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	logCtx = logCtx.With(slog.Int64("userID", u.ID))

	eventType, err := apply(ctx, u)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to update user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to %s user %d: %w", operation, u.ID, err)
	}
	logCtx.InfoContext(ctx, "User updated")

	env := event.New(eventType, event.UserPayload{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		IsBlocked: u.IsBlocked,
		ActorID:   actor.ID,
	})
	if pubErr := s.pub.Publish(ctx, env); pubErr != nil {
		logCtx.ErrorContext(ctx, "User updated, but FAILED to publish event", slog.Any("error", pubErr))
	}
	return u, nil
}

func (s *userService) findByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to find user by email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
