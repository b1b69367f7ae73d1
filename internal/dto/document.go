package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailcore/backoffice/internal/core/domain"
)

// CreateDocumentRequest opens a new draft document.
type CreateDocumentRequest struct {
	Kind             domain.DocumentKind `json:"kind" binding:"required"`
	DiscountPercent  decimal.Decimal     `json:"discountPercent"`
	TaxPercent       decimal.Decimal     `json:"taxPercent"`
	LinkedDocumentID string              `json:"linkedDocumentID,omitempty"`
}

// AddItemRequest appends a line item to a draft. Name and unit price are
// snapshotted from the catalog by the service, not supplied by the caller.
type AddItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// SetPercentRequest carries a discount or tax percentage update.
type SetPercentRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// LineItemResponse defines the data returned for one line item.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// TotalsResponse carries the derived totals, rounded to 2 fraction digits for
// display alongside the exact values.
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID       string                `json:"documentID"`
	Kind             domain.DocumentKind   `json:"kind"`
	Status           domain.DocumentStatus `json:"status"`
	Items            []LineItemResponse    `json:"items"`
	DiscountPercent  decimal.Decimal       `json:"discountPercent"`
	TaxPercent       decimal.Decimal       `json:"taxPercent"`
	LinkedDocumentID string                `json:"linkedDocumentID,omitempty"`
	Totals           TotalsResponse        `json:"totals"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// ListDocumentsResponse is one page of documents.
type ListDocumentsResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
}

// ToDocumentResponse converts a domain.Document to its response DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	items := make([]LineItemResponse, len(d.Items))
	for i, item := range d.Items {
		items[i] = LineItemResponse{
			LineItemID:  item.LineItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		}
	}
	return DocumentResponse{
		DocumentID:       d.DocumentID,
		Kind:             d.Kind,
		Status:           d.Status,
		Items:            items,
		DiscountPercent:  d.DiscountPercent,
		TaxPercent:       d.TaxPercent,
		LinkedDocumentID: d.LinkedDocumentID,
		Totals: TotalsResponse{
			Subtotal:       d.Totals.Subtotal,
			DiscountAmount: d.Totals.DiscountAmount,
			TaxableAmount:  d.Totals.TaxableAmount,
			TaxAmount:      d.Totals.TaxAmount,
			TotalAmount:    d.Totals.TotalAmount,
		},
		CreatedAt: d.CreatedAt,
	}
}

// ToDocumentResponses converts a slice of domain.Document.
func ToDocumentResponses(documents []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = ToDocumentResponse(&documents[i])
	}
	return responses
}
