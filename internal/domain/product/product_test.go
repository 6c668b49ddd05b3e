package product

import (
	"context"
	"io"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, productID int64) (*Product, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]*Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupTest() (*MockRepository, Service) {
	repo := new(MockRepository)
	return repo, NewProductService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, svc := setupTest()
		want := &Product{ID: 3, Title: "Laptop", Price: decimal.NewFromInt(1000)}
		repo.On("FindByID", ctx, int64(3)).Return(want, nil).Once()

		got, err := svc.GetProduct(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Not found", func(t *testing.T) {
		repo, svc := setupTest()
		repo.On("FindByID", ctx, int64(3)).Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.GetProduct(ctx, 3)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Invalid id", func(t *testing.T) {
		repo, svc := setupTest()

		_, err := svc.GetProduct(ctx, -1)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty catalog is never nil", func(t *testing.T) {
		repo, svc := setupTest()
		repo.On("FindAll", ctx).Return(nil, nil).Once()

		got, err := svc.ListProducts(ctx)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Database failure", func(t *testing.T) {
		repo, svc := setupTest()
		repo.On("FindAll", ctx).Return(nil, apperrors.ErrDatabase).Once()

		_, err := svc.ListProducts(ctx)

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})
}
