package user

import (
	"context"
	"lending-api/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, userID int64) (*User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	return m.Called(ctx, userID, blocked).Error(0)
}

func (m *MockRepository) SetRole(ctx context.Context, userID int64, role Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, env event.Envelope) error {
	return m.Called(ctx, env).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}
