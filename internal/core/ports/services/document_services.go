package services

import (
	"context"

	"github.com/retailcore/backoffice/internal/core/domain"
	"github.com/retailcore/backoffice/internal/dto"
)

// DocumentReaderSvc defines read operations on documents.
type DocumentReaderSvc interface {
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, params dto.ListParams) (*dto.ListDocumentsResponse, error)
}

// DocumentWriterSvc defines the document lifecycle operations.
//
// Draft mutations (AddItem, RemoveItem, SetDiscount, SetTax) recompute the
// totals and are rejected with apperrors.ErrInvalidTransition once the
// document leaves Draft. Commit and Delete are atomic: on failure the
// document and every touched stock entry are left exactly as they were.
type DocumentWriterSvc interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)
	AddItem(ctx context.Context, documentID string, req dto.AddItemRequest, userID string) (*domain.Document, error)
	RemoveItem(ctx context.Context, documentID string, lineItemID string, userID string) (*domain.Document, error)
	SetDiscount(ctx context.Context, documentID string, percent dto.SetPercentRequest, userID string) (*domain.Document, error)
	SetTax(ctx context.Context, documentID string, percent dto.SetPercentRequest, userID string) (*domain.Document, error)
	Commit(ctx context.Context, documentID string, userID string) (*domain.Document, error)
	MarkPaid(ctx context.Context, documentID string, userID string) (*domain.Document, error)
	Delete(ctx context.Context, documentID string, userID string) error
}

// DocumentSvcFacade combines all document service interfaces.
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
