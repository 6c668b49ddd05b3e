package product

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/pkg/apperrors"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Product is a catalog item that installment loans are issued against.
type Product struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type Repository interface {
	FindByID(ctx context.Context, productID int64) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
}

type Service interface {
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
}

type productService struct {
	repo   Repository
	logger *slog.Logger
}

func NewProductService(repo Repository, logger *slog.Logger) Service {
	if repo == nil {
		panic("product repository cannot be nil")
	}
	return &productService{repo: repo, logger: logger.With(slog.String("component", "productService"))}
}

func (s *productService) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	if productID <= 0 {
		return nil, apperrors.NewValidationError("productId", "product id must be positive")
	}
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, productID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to find product", slog.Int64("productID", productID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get product %d: %w", productID, err)
	}
	return p, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to list products", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []*Product{}
	}
	return products, nil
}
