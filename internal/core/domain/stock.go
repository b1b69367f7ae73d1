package domain

import "time"

// AdjustMode selects how a manual stock correction is applied.
type AdjustMode string

const (
	AdjustAdd      AdjustMode = "ADD"
	AdjustSubtract AdjustMode = "SUBTRACT"
	AdjustSet      AdjustMode = "SET"
)

// MovementReason records why a stock quantity changed.
type MovementReason string

const (
	MovementCommit     MovementReason = "DOCUMENT_COMMIT"
	MovementReversal   MovementReason = "DOCUMENT_REVERSAL"
	MovementAdjustment MovementReason = "MANUAL_ADJUSTMENT"
)

// StockEntry holds the recorded on-hand quantity for one product.
// Invariant: Quantity never goes below zero.
type StockEntry struct {
	ProductID        string `json:"productID"`
	Quantity         int64  `json:"quantity"`
	MinimumThreshold int64  `json:"minimumThreshold"`
	AuditFields
}

// IsLow reports whether the entry has fallen to or below its reorder threshold.
func (e StockEntry) IsLow() bool {
	return e.Quantity <= e.MinimumThreshold
}

// StockMovement is one signed quantity change applied to a StockEntry,
// kept as an audit trail alongside the mutable quantity.
type StockMovement struct {
	MovementID string         `json:"movementID"`
	ProductID  string         `json:"productID"`
	Quantity   int64          `json:"quantity"` // signed: positive replenish, negative consume
	Reason     MovementReason `json:"reason"`
	DocumentID string         `json:"documentID,omitempty"` // empty for manual adjustments
	CreatedAt  time.Time      `json:"createdAt"`
	CreatedBy  string         `json:"createdBy"`
}
