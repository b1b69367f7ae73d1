package services

import (
	"context"

	"github.com/retailcore/backoffice/internal/core/domain"
	"github.com/retailcore/backoffice/internal/dto"
)

// StockLedgerSvc is the single owner of stock quantities. Document commits and
// reversals go through ApplyDocumentDeltas; manual corrections through Adjust.
type StockLedgerSvc interface {
	// CheckAvailability reports whether the requested quantity is currently
	// on hand. The ledger re-validates at apply time regardless, so this is
	// advisory for callers that want to fail early.
	CheckAvailability(ctx context.Context, productID string, quantity int64) (bool, error)

	// ApplyDocumentDeltas applies a committed (or reversed) document's signed
	// quantity changes all-or-nothing, recording one movement per product.
	ApplyDocumentDeltas(ctx context.Context, deltas map[string]int64, reason domain.MovementReason, documentID string, userID string) error

	// Adjust applies a manual correction outside any document. Subtract
	// clamps at zero rather than erroring.
	Adjust(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.StockEntry, error)

	// CreateStockEntry seeds the ledger entry for a new product.
	CreateStockEntry(ctx context.Context, entry domain.StockEntry) error

	GetStockEntry(ctx context.Context, productID string) (*domain.StockEntry, error)
	ListStock(ctx context.Context, params dto.ListParams) (*dto.ListStockResponse, error)
	ListLowStock(ctx context.Context) ([]domain.StockEntry, error)
	ListMovements(ctx context.Context, productID string) ([]domain.StockMovement, error)
}

// StockLedgerSvcFacade is the full stock ledger surface.
type StockLedgerSvcFacade interface {
	StockLedgerSvc
}
