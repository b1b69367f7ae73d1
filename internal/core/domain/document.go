package domain

import "github.com/shopspring/decimal"

// DocumentKind identifies the commercial meaning of a document.
type DocumentKind string

const (
	Sale          DocumentKind = "SALE"
	Invoice       DocumentKind = "INVOICE"
	PurchaseOrder DocumentKind = "PURCHASE_ORDER"
	Return        DocumentKind = "RETURN"
)

// Valid reports whether k is one of the known document kinds.
func (k DocumentKind) Valid() bool {
	switch k {
	case Sale, Invoice, PurchaseOrder, Return:
		return true
	}
	return false
}

// StockDirection returns the sign of the stock effect a committed document of
// this kind has per line item: -1 consumes stock, +1 restocks it.
func (k DocumentKind) StockDirection() int64 {
	switch k {
	case Sale, Invoice:
		return -1
	case PurchaseOrder, Return:
		return +1
	}
	return 0
}

// CommittedStatus is the post-commit status for this kind: returns move to
// Processed, everything else to Committed.
func (k DocumentKind) CommittedStatus() DocumentStatus {
	if k == Return {
		return StatusProcessed
	}
	return StatusCommitted
}

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusCommitted DocumentStatus = "COMMITTED"
	StatusProcessed DocumentStatus = "PROCESSED"
	StatusPaid      DocumentStatus = "PAID"
)

// allowedTransitions is the closed transition table per document kind.
// Deletion is not listed here: it is a compensating removal valid from any
// state, handled by the document service.
var allowedTransitions = map[DocumentKind]map[DocumentStatus][]DocumentStatus{
	Sale: {
		StatusDraft:     {StatusCommitted},
		StatusCommitted: {StatusPaid},
	},
	Invoice: {
		StatusDraft:     {StatusCommitted},
		StatusCommitted: {StatusPaid},
	},
	PurchaseOrder: {
		StatusDraft: {StatusCommitted},
	},
	Return: {
		StatusDraft: {StatusProcessed},
	},
}

// CanTransition reports whether a document of the given kind may move from one
// status to another.
func CanTransition(kind DocumentKind, from, to DocumentStatus) bool {
	for _, next := range allowedTransitions[kind][from] {
		if next == to {
			return true
		}
	}
	return false
}

// LineItem is an immutable snapshot of a product at the time it was added to a
// document. Later catalog changes must not alter historical documents, so the
// name and unit price are copied rather than referenced.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Amount is the extended line value (quantity x unit price), full precision.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// DocumentTotals holds the derived financial figures of a document. They are
// recomputed from the items and percentages on every draft mutation and are
// never edited directly.
type DocumentTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// Document is a line-item commerce document (sale, invoice, purchase order or
// return) moving through the Draft -> Committed/Processed [-> Paid] lifecycle.
type Document struct {
	DocumentID       string          `json:"documentID"`
	Kind             DocumentKind    `json:"kind"`
	Status           DocumentStatus  `json:"status"`
	Items            []LineItem      `json:"items"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	TaxPercent       decimal.Decimal `json:"taxPercent"`
	LinkedDocumentID string          `json:"linkedDocumentID,omitempty"` // e.g. the sale a return reverses
	Totals           DocumentTotals  `json:"totals"`
	AuditFields
}

// IsDraft reports whether the document is still freely editable.
func (d *Document) IsDraft() bool {
	return d.Status == StatusDraft
}

// HasStockEffect reports whether the document has had its stock delta applied,
// i.e. it is in any post-draft state.
func (d *Document) HasStockEffect() bool {
	return d.Status == StatusCommitted || d.Status == StatusProcessed || d.Status == StatusPaid
}

// StockDeltas computes the signed per-product quantity changes a commit of
// this document applies. Multiple lines for the same product accumulate.
func (d *Document) StockDeltas() map[string]int64 {
	direction := d.Kind.StockDirection()
	deltas := make(map[string]int64, len(d.Items))
	for _, item := range d.Items {
		deltas[item.ProductID] += direction * item.Quantity
	}
	return deltas
}

// ReversalDeltas computes the deltas that undo a prior commit of this
// document: the exact negation of StockDeltas.
func (d *Document) ReversalDeltas() map[string]int64 {
	deltas := d.StockDeltas()
	for productID, delta := range deltas {
		deltas[productID] = -delta
	}
	return deltas
}
