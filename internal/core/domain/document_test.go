package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		kind    DocumentKind
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{"sale draft to committed", Sale, StatusDraft, StatusCommitted, true},
		{"sale committed to paid", Sale, StatusCommitted, StatusPaid, true},
		{"invoice draft to committed", Invoice, StatusDraft, StatusCommitted, true},
		{"invoice committed to paid", Invoice, StatusCommitted, StatusPaid, true},
		{"purchase order draft to committed", PurchaseOrder, StatusDraft, StatusCommitted, true},
		{"return draft to processed", Return, StatusDraft, StatusProcessed, true},
		{"sale draft to paid skips commit", Sale, StatusDraft, StatusPaid, false},
		{"sale paid to committed", Sale, StatusPaid, StatusCommitted, false},
		{"purchase order committed to paid", PurchaseOrder, StatusCommitted, StatusPaid, false},
		{"return draft to committed", Return, StatusDraft, StatusCommitted, false},
		{"return processed to paid", Return, StatusProcessed, StatusPaid, false},
		{"committed back to draft", Invoice, StatusCommitted, StatusDraft, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.kind, tc.from, tc.to))
		})
	}
}

func TestStockDirection(t *testing.T) {
	assert.Equal(t, int64(-1), Sale.StockDirection())
	assert.Equal(t, int64(-1), Invoice.StockDirection())
	assert.Equal(t, int64(+1), PurchaseOrder.StockDirection())
	assert.Equal(t, int64(+1), Return.StockDirection())
}

func TestCommittedStatus(t *testing.T) {
	assert.Equal(t, StatusCommitted, Sale.CommittedStatus())
	assert.Equal(t, StatusCommitted, Invoice.CommittedStatus())
	assert.Equal(t, StatusCommitted, PurchaseOrder.CommittedStatus())
	assert.Equal(t, StatusProcessed, Return.CommittedStatus())
}

func TestStockDeltas(t *testing.T) {
	doc := Document{
		Kind: Sale,
		Items: []LineItem{
			{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	deltas := doc.StockDeltas()
	assert.Equal(t, map[string]int64{"p1": -5, "p2": -1}, deltas)

	reversal := doc.ReversalDeltas()
	assert.Equal(t, map[string]int64{"p1": 5, "p2": 1}, reversal)

	doc.Kind = Return
	assert.Equal(t, map[string]int64{"p1": 5, "p2": 1}, doc.StockDeltas())
}

func TestLineItemAmount(t *testing.T) {
	li := LineItem{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")}
	assert.True(t, li.Amount().Equal(decimal.RequireFromString("59.97")))
}
