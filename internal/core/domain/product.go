package domain

import "github.com/shopspring/decimal"

// Product represents a catalog entry. Stock quantity is deliberately NOT part
// of this struct: it lives on StockEntry and is owned by the stock ledger.
type Product struct {
	ProductID string          `json:"productID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}
