package dto

import (
	"time"

	"github.com/retailcore/backoffice/internal/core/domain"
)

// AdjustStockRequest defines a manual stock correction.
type AdjustStockRequest struct {
	Mode   domain.AdjustMode `json:"mode" binding:"required"`
	Amount int64             `json:"amount" binding:"gte=0"`
}

// StockEntryResponse defines the data returned for a stock entry.
type StockEntryResponse struct {
	ProductID        string `json:"productID"`
	Quantity         int64  `json:"quantity"`
	MinimumThreshold int64  `json:"minimumThreshold"`
	IsLow            bool   `json:"isLow"`
}

// StockMovementResponse defines the data returned for one movement.
type StockMovementResponse struct {
	MovementID string                `json:"movementID"`
	ProductID  string                `json:"productID"`
	Quantity   int64                 `json:"quantity"`
	Reason     domain.MovementReason `json:"reason"`
	DocumentID string                `json:"documentID,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ListStockResponse is one page of stock entries.
type ListStockResponse struct {
	Entries    []StockEntryResponse `json:"entries"`
	TotalCount int                  `json:"totalCount"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
}

// ToStockEntryResponse converts a domain.StockEntry to its response DTO.
func ToStockEntryResponse(e *domain.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ProductID:        e.ProductID,
		Quantity:         e.Quantity,
		MinimumThreshold: e.MinimumThreshold,
		IsLow:            e.IsLow(),
	}
}

// ToStockEntryResponses converts a slice of domain.StockEntry.
func ToStockEntryResponses(entries []domain.StockEntry) []StockEntryResponse {
	responses := make([]StockEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToStockEntryResponse(&entries[i])
	}
	return responses
}

// ToStockMovementResponses converts a slice of domain.StockMovement.
func ToStockMovementResponses(movements []domain.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = StockMovementResponse{
			MovementID: m.MovementID,
			ProductID:  m.ProductID,
			Quantity:   m.Quantity,
			Reason:     m.Reason,
			DocumentID: m.DocumentID,
			CreatedAt:  m.CreatedAt,
		}
	}
	return responses
}
