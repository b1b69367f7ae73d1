package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
)

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new repository for document data.
func NewDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &documentRepository{pool: pool}
}

var _ portsrepo.DocumentRepositoryFacade = (*documentRepository)(nil)

func (r *documentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin document transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var linkedID *string
	if document.LinkedDocumentID != "" {
		linkedID = &document.LinkedDocumentID
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO documents (document_id, kind, status, discount_percent, tax_percent, linked_document_id,
		                       subtotal, discount_amount, taxable_amount, tax_amount, total_amount,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`,
		document.DocumentID,
		document.Kind,
		document.Status,
		document.DiscountPercent,
		document.TaxPercent,
		linkedID,
		document.Totals.Subtotal,
		document.Totals.DiscountAmount,
		document.Totals.TaxableAmount,
		document.Totals.TaxAmount,
		document.Totals.TotalAmount,
		document.CreatedAt,
		document.CreatedBy,
		document.LastUpdatedAt,
		document.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", document.DocumentID, err)
	}

	if err := insertLineItems(ctx, tx, document); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document transaction: %w", err)
	}
	return nil
}

// UpdateDocument rewrites the document row and replaces its line items, both
// in one transaction. Drafts are the only documents whose items still change,
// and their item counts are small.
func (r *documentRepository) UpdateDocument(ctx context.Context, document domain.Document) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin document transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var linkedID *string
	if document.LinkedDocumentID != "" {
		linkedID = &document.LinkedDocumentID
	}
	tag, err := tx.Exec(ctx, `
		UPDATE documents
		SET kind = $2, status = $3, discount_percent = $4, tax_percent = $5, linked_document_id = $6,
		    subtotal = $7, discount_amount = $8, taxable_amount = $9, tax_amount = $10, total_amount = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE document_id = $1;
	`,
		document.DocumentID,
		document.Kind,
		document.Status,
		document.DiscountPercent,
		document.TaxPercent,
		linkedID,
		document.Totals.Subtotal,
		document.Totals.DiscountAmount,
		document.Totals.TaxableAmount,
		document.Totals.TaxAmount,
		document.Totals.TotalAmount,
		document.LastUpdatedAt,
		document.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", document.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, document.DocumentID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, document.DocumentID); err != nil {
		return fmt.Errorf("failed to clear line items for document %s: %w", document.DocumentID, err)
	}
	if err := insertLineItems(ctx, tx, document); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document transaction: %w", err)
	}
	return nil
}

func insertLineItems(ctx context.Context, tx pgx.Tx, document domain.Document) error {
	for position, item := range document.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO line_items (line_item_id, document_id, position, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`,
			item.LineItemID,
			document.DocumentID,
			position,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item %s: %w", item.LineItemID, err)
		}
	}
	return nil
}

func (r *documentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin document transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, documentID); err != nil {
		return fmt.Errorf("failed to delete line items for document %s: %w", documentID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document transaction: %w", err)
	}
	return nil
}

func (r *documentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `
		SELECT document_id, kind, status, discount_percent, tax_percent, linked_document_id,
		       subtotal, discount_amount, taxable_amount, tax_amount, total_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM documents WHERE document_id = $1;
	`
	document, err := scanDocument(r.pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to scan document %s: %w", documentID, err)
	}

	items, err := r.findLineItems(ctx, documentID)
	if err != nil {
		return nil, err
	}
	document.Items = items
	return document, nil
}

func (r *documentRepository) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	query := `
		SELECT document_id, kind, status, discount_percent, tax_percent, linked_document_id,
		       subtotal, discount_amount, taxable_amount, tax_amount, total_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM documents ORDER BY created_at, document_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		documents = append(documents, *document)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range documents {
		items, err := r.findLineItems(ctx, documents[i].DocumentID)
		if err != nil {
			return nil, err
		}
		documents[i].Items = items
	}
	return documents, nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var document domain.Document
	var linkedID *string
	err := row.Scan(
		&document.DocumentID,
		&document.Kind,
		&document.Status,
		&document.DiscountPercent,
		&document.TaxPercent,
		&linkedID,
		&document.Totals.Subtotal,
		&document.Totals.DiscountAmount,
		&document.Totals.TaxableAmount,
		&document.Totals.TaxAmount,
		&document.Totals.TotalAmount,
		&document.CreatedAt,
		&document.CreatedBy,
		&document.LastUpdatedAt,
		&document.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if linkedID != nil {
		document.LinkedDocumentID = *linkedID
	}
	return &document, nil
}

func (r *documentRepository) findLineItems(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, product_id, product_name, quantity, unit_price
		FROM line_items WHERE document_id = $1 ORDER BY position;
	`
	rows, err := r.pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for document %s: %w", documentID, err)
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(
			&item.LineItemID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
