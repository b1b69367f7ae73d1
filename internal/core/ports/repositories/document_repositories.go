package repositories

import (
	"context"

	"github.com/retailcore/backoffice/internal/core/domain"
)

// DocumentReader defines read operations for document data.
type DocumentReader interface {
	// FindDocumentByID retrieves a document and its line items.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments returns all documents with their line items.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}

// DocumentWriter defines write operations for document data.
// Saving or updating a document persists its line items with it.
type DocumentWriter interface {
	// SaveDocument persists a new document.
	SaveDocument(ctx context.Context, document domain.Document) error

	// UpdateDocument replaces a document's stored state (items included).
	UpdateDocument(ctx context.Context, document domain.Document) error

	// DeleteDocument removes a document and its line items.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
