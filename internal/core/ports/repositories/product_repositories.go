package repositories

import (
	"context"

	"github.com/retailcore/backoffice/internal/core/domain"
)

// ProductReader defines read operations for catalog data.
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductBySKU retrieves a product by its SKU.
	FindProductBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// ListProducts returns the full catalog. Record sets are small and
	// in-memory views (search/sort/page) are applied by the caller.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for catalog data.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
