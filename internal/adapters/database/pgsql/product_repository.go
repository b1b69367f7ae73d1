package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
)

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new repository for catalog data.
func NewProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &productRepository{pool: pool}
}

var _ portsrepo.ProductRepositoryFacade = (*productRepository)(nil)

const productColumns = `product_id, sku, name, category, unit_price, is_active, created_at, created_by, last_updated_at, last_updated_by`

func (r *productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		product.ProductID,
		product.SKU,
		product.Name,
		product.Category,
		product.UnitPrice,
		product.IsActive,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", product.ProductID, err)
	}
	return nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, category = $4, unit_price = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE product_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ProductID,
		product.SKU,
		product.Name,
		product.Category,
		product.UnitPrice,
		product.IsActive,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, product.ProductID)
	}
	return nil
}

func (r *productRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	return r.scanProduct(r.pool.QueryRow(ctx, query, productID), productID)
}

func (r *productRepository) FindProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1;`
	return r.scanProduct(r.pool.QueryRow(ctx, query, sku), sku)
}

func (r *productRepository) scanProduct(row pgx.Row, ref string) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(
		&product.ProductID,
		&product.SKU,
		&product.Name,
		&product.Category,
		&product.UnitPrice,
		&product.IsActive,
		&product.CreatedAt,
		&product.CreatedBy,
		&product.LastUpdatedAt,
		&product.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to scan product %s: %w", ref, err)
	}
	return &product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, product_id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ProductID,
			&product.SKU,
			&product.Name,
			&product.Category,
			&product.UnitPrice,
			&product.IsActive,
			&product.CreatedAt,
			&product.CreatedBy,
			&product.LastUpdatedAt,
			&product.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
