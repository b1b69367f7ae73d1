package services

import (
	"context"

	"github.com/retailcore/backoffice/internal/core/domain"
	"github.com/retailcore/backoffice/internal/dto"
)

// ProductReaderSvc defines read operations on the catalog.
type ProductReaderSvc interface {
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListParams) (*dto.ListProductsResponse, error)
}

// ProductWriterSvc defines write operations on the catalog.
type ProductWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, userID string) error
}

// ProductSvcFacade combines all product service interfaces.
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
