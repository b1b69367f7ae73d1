package repositories

import (
	"context"

	"github.com/retailcore/backoffice/internal/core/domain"
)

// StockReader defines read operations for stock ledger data.
type StockReader interface {
	// FindStockEntryByProductID retrieves the stock entry for a product.
	FindStockEntryByProductID(ctx context.Context, productID string) (*domain.StockEntry, error)

	// ListStockEntries returns all stock entries.
	ListStockEntries(ctx context.Context) ([]domain.StockEntry, error)
}

// StockWriter defines write operations for stock ledger data.
//
// ApplyDeltas and AdjustQuantity are the only paths that mutate quantities,
// and both must be atomic within the adapter: a failed batch leaves every
// touched entry untouched, and concurrent batches must not interleave between
// the availability check and the write.
type StockWriter interface {
	// SaveStockEntry persists a new stock entry (created with its product).
	SaveStockEntry(ctx context.Context, entry domain.StockEntry) error

	// ApplyDeltas applies the signed quantity changes all-or-nothing and
	// records the given movements in the same atomic step. Any delta that
	// would drive a quantity negative aborts the whole batch with
	// apperrors.ErrInsufficientStock; a missing entry aborts it with
	// apperrors.ErrNotFound.
	ApplyDeltas(ctx context.Context, deltas map[string]int64, movements []domain.StockMovement) error

	// AdjustQuantity applies a manual correction. Subtract clamps at zero
	// instead of erroring; Set replaces the quantity outright. The movement
	// is recorded with the actually applied (post-clamp) delta, and the new
	// quantity is returned.
	AdjustQuantity(ctx context.Context, productID string, mode domain.AdjustMode, amount int64, movement domain.StockMovement) (int64, error)
}

// StockMovementReader defines read operations for the movement audit trail.
type StockMovementReader interface {
	// ListMovementsByProductID returns the movements of one product, newest first.
	ListMovementsByProductID(ctx context.Context, productID string) ([]domain.StockMovement, error)
}

// StockRepositoryFacade combines all stock repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockWriter
	StockMovementReader
}
