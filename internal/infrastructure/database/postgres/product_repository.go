package postgres

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/domain/product"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db      DBPool
	timeout time.Duration
	logger  *slog.Logger
}

var _ product.Repository = (*ProductRepository)(nil)

func NewProductRepository(db DBPool, queryTimeout time.Duration, logger *slog.Logger) *ProductRepository {
	if db == nil {
		panic("DBPool cannot be nil for ProductRepository")
	}
	return &ProductRepository{db: db, timeout: queryTimeout, logger: logger.With("component", "ProductRepository")}
}

func (r *ProductRepository) FindByID(ctx context.Context, productID int64) (_ *product.Product, err error) {
	defer observe("product_find_by_id", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var p product.Product
	err = r.db.QueryRow(ctx, `SELECT id, title, price FROM products WHERE id = $1`, productID).Scan(&p.ID, &p.Title, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, productID)
		}
		r.logger.ErrorContext(ctx, "Failed to find product", "product_id", productID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return &p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) (_ []*product.Product, err error) {
	defer observe("product_find_all", time.Now(), &err)
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, title, price FROM products ORDER BY id`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query products", "error", err)
		return nil, fmt.Errorf("%w: failed to query products: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	products := make([]*product.Product, 0)
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan product row", "error", err)
			return nil, fmt.Errorf("%w: failed scanning product: %w", apperrors.ErrDatabase, err)
		}
		products = append(products, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating products: %w", apperrors.ErrDatabase, err)
	}
	return products, nil
}
