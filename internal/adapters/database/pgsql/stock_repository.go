package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
)

type stockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new repository for stock ledger data.
func NewStockRepository(pool *pgxpool.Pool) portsrepo.StockRepositoryFacade {
	return &stockRepository{pool: pool}
}

var _ portsrepo.StockRepositoryFacade = (*stockRepository)(nil)

func (r *stockRepository) SaveStockEntry(ctx context.Context, entry domain.StockEntry) error {
	query := `
		INSERT INTO stock_entries (product_id, quantity, minimum_threshold, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ProductID,
		entry.Quantity,
		entry.MinimumThreshold,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock entry for product %s: %w", entry.ProductID, err)
	}
	return nil
}

func (r *stockRepository) FindStockEntryByProductID(ctx context.Context, productID string) (*domain.StockEntry, error) {
	query := `
		SELECT product_id, quantity, minimum_threshold, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_entries WHERE product_id = $1;
	`
	var entry domain.StockEntry
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&entry.ProductID,
		&entry.Quantity,
		&entry.MinimumThreshold,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: stock entry for product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to scan stock entry for product %s: %w", productID, err)
	}
	return &entry, nil
}

func (r *stockRepository) ListStockEntries(ctx context.Context) ([]domain.StockEntry, error) {
	query := `
		SELECT product_id, quantity, minimum_threshold, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_entries ORDER BY created_at, product_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockEntry
	for rows.Next() {
		var entry domain.StockEntry
		if err := rows.Scan(
			&entry.ProductID,
			&entry.Quantity,
			&entry.MinimumThreshold,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ApplyDeltas runs the whole batch inside one transaction. Rows are locked in
// sorted product order so two concurrent batches cannot deadlock, and the
// guarded UPDATE re-validates the quantity so a concurrent commit cannot slip
// between an availability check and the write.
func (r *stockRepository) ApplyDeltas(ctx context.Context, deltas map[string]int64, movements []domain.StockMovement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin stock transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	productIDs := make([]string, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}
	sort.Strings(productIDs)

	for _, productID := range productIDs {
		delta := deltas[productID]
		tag, err := tx.Exec(ctx, `
			UPDATE stock_entries
			SET quantity = quantity + $2, last_updated_at = now()
			WHERE product_id = $1 AND quantity + $2 >= 0;
		`, productID, delta)
		if err != nil {
			return fmt.Errorf("failed to apply delta for product %s: %w", productID, err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM stock_entries WHERE product_id = $1);`, productID).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check stock entry for product %s: %w", productID, err)
			}
			if !exists {
				return fmt.Errorf("%w: stock entry for product %s", apperrors.ErrNotFound, productID)
			}
			return fmt.Errorf("%w: product %s, delta %d", apperrors.ErrInsufficientStock, productID, delta)
		}
	}

	for _, movement := range movements {
		if err := insertMovement(ctx, tx, movement); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit stock transaction: %w", err)
	}
	return nil
}

func (r *stockRepository) AdjustQuantity(ctx context.Context, productID string, mode domain.AdjustMode, amount int64, movement domain.StockMovement) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin stock transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int64
	err = tx.QueryRow(ctx, `SELECT quantity FROM stock_entries WHERE product_id = $1 FOR UPDATE;`, productID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: stock entry for product %s", apperrors.ErrNotFound, productID)
		}
		return 0, fmt.Errorf("failed to lock stock entry for product %s: %w", productID, err)
	}

	newQuantity := current
	switch mode {
	case domain.AdjustAdd:
		newQuantity += amount
	case domain.AdjustSubtract:
		newQuantity -= amount
		if newQuantity < 0 {
			newQuantity = 0
		}
	case domain.AdjustSet:
		newQuantity = amount
	default:
		return 0, fmt.Errorf("%w: unknown adjust mode %q", apperrors.ErrValidation, mode)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE stock_entries SET quantity = $2, last_updated_at = now() WHERE product_id = $1;
	`, productID, newQuantity); err != nil {
		return 0, fmt.Errorf("failed to update stock entry for product %s: %w", productID, err)
	}

	movement.Quantity = newQuantity - current
	if err := insertMovement(ctx, tx, movement); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit stock transaction: %w", err)
	}
	return newQuantity, nil
}

func insertMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	var documentID *string
	if movement.DocumentID != "" {
		documentID = &movement.DocumentID
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (movement_id, product_id, quantity, reason, document_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`,
		movement.MovementID,
		movement.ProductID,
		movement.Quantity,
		movement.Reason,
		documentID,
		movement.CreatedAt,
		movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", movement.MovementID, err)
	}
	return nil
}

func (r *stockRepository) ListMovementsByProductID(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	query := `
		SELECT movement_id, product_id, quantity, reason, document_id, created_at, created_by
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC, movement_id;
	`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var movement domain.StockMovement
		var documentID *string
		if err := rows.Scan(
			&movement.MovementID,
			&movement.ProductID,
			&movement.Quantity,
			&movement.Reason,
			&documentID,
			&movement.CreatedAt,
			&movement.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		if documentID != nil {
			movement.DocumentID = *documentID
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}
