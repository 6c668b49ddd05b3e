package loan

import (
	"context"
	"lending-api/internal/domain/product"
	"lending-api/internal/domain/user"
	"lending-api/internal/event"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, loan *Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockRepository) CreateWithCar(ctx context.Context, car *Car, loan *Loan) error {
	return m.Called(ctx, car, loan).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, loanID int64) (*Loan, error) {
	args := m.Called(ctx, loanID)
	if l := args.Get(0); l != nil {
		return l.(*Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Loan, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.([]*Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, loan *Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, loanID int64, version int64) error {
	return m.Called(ctx, loanID, version).Error(0)
}

type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) GetProduct(ctx context.Context, productID int64) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPriceOracle struct {
	mock.Mock
}

func (m *MockPriceOracle) GetCarPrice(ctx context.Context, model string) (decimal.Decimal, error) {
	args := m.Called(ctx, model)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
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
