package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/dto"
	"github.com/retailcore/backoffice/internal/middleware"
	"github.com/retailcore/backoffice/internal/utils/tabular"
)

// productService manages the catalog. It never touches stock quantities
// directly: the seed entry for a new product goes through the stock ledger.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	stockSvc    portssvc.StockLedgerSvcFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, stockSvc portssvc.StockLedgerSvcFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		stockSvc:    stockSvc,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative, got %s", apperrors.ErrValidation, req.UnitPrice)
	}

	existing, err := s.productRepo.FindProductBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check SKU %s: %w", req.SKU, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s", apperrors.ErrDuplicate, req.SKU)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID: uuid.NewString(),
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("sku", req.SKU))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	entry := domain.StockEntry{
		ProductID:        product.ProductID,
		Quantity:         req.InitialQuantity,
		MinimumThreshold: req.MinimumThreshold,
		AuditFields:      product.AuditFields,
	}
	if err := s.stockSvc.CreateStockEntry(ctx, entry); err != nil {
		logger.Error("Failed to seed stock entry for new product", slog.String("error", err.Error()), slog.String("product_id", product.ProductID))
		return nil, fmt.Errorf("failed to seed stock entry: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative, got %s", apperrors.ErrValidation, req.UnitPrice)
		}
		product.UnitPrice = *req.UnitPrice
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	if !product.IsActive {
		return nil
	}

	product.IsActive = false
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return fmt.Errorf("failed to deactivate product %s: %w", productID, err)
	}

	logger.Info("Product deactivated", slog.String("product_id", productID))
	return nil
}

func productColumns() []tabular.Column[domain.Product] {
	return []tabular.Column[domain.Product]{
		{Key: "sku", Value: func(p domain.Product) any { return p.SKU }, Searchable: true},
		{Key: "name", Value: func(p domain.Product) any { return p.Name }, Searchable: true},
		{Key: "category", Value: func(p domain.Product) any { return p.Category }, Searchable: true},
		{Key: "unitPrice", Value: func(p domain.Product) any { return p.UnitPrice }},
		{Key: "createdAt", Value: func(p domain.Product) any { return p.CreatedAt }},
	}
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListParams) (*dto.ListProductsResponse, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	view, err := tabular.View(products, productColumns(), params.ToTabular())
	if err != nil {
		return nil, err
	}

	return &dto.ListProductsResponse{
		Products:   dto.ToProductResponses(view.Rows),
		TotalCount: view.TotalCount,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}
