package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailcore/backoffice/internal/core/domain"
)

// CreateProductRequest defines the payload for creating a catalog product.
// The initial quantity and threshold seed the product's stock entry.
type CreateProductRequest struct {
	SKU              string          `json:"sku" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Category         string          `json:"category"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"required"`
	InitialQuantity  int64           `json:"initialQuantity" binding:"gte=0"`
	MinimumThreshold int64           `json:"minimumThreshold" binding:"gte=0"`
}

// UpdateProductRequest defines the payload for updating a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	Category  *string          `json:"category,omitempty"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListProductsResponse is one page of products.
type ListProductsResponse struct {
	Products   []ProductResponse `json:"products"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		UnitPrice: p.UnitPrice,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

// ToProductResponses converts a slice of domain.Product.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
