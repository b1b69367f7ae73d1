package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	"github.com/retailcore/backoffice/internal/core/pricing"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/dto"
	"github.com/retailcore/backoffice/internal/middleware"
	"github.com/retailcore/backoffice/internal/utils/tabular"
)

// documentService drives the document lifecycle: draft mutations recompute
// totals through the pricing pipeline, commit and delete apply or reverse the
// stock delta through the stock ledger exactly once.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	productSvc   portssvc.ProductReaderSvc
	stockSvc     portssvc.StockLedgerSvcFacade
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, productSvc portssvc.ProductReaderSvc, stockSvc portssvc.StockLedgerSvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		productSvc:   productSvc,
		stockSvc:     stockSvc,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, req.Kind)
	}

	if req.Kind == domain.Return {
		if req.LinkedDocumentID == "" {
			return nil, fmt.Errorf("%w: a return must reference the sale or invoice it reverses", apperrors.ErrValidation)
		}
		linked, err := s.documentRepo.FindDocumentByID(ctx, req.LinkedDocumentID)
		if err != nil {
			return nil, fmt.Errorf("failed to find linked document %s: %w", req.LinkedDocumentID, err)
		}
		if linked.Kind != domain.Sale && linked.Kind != domain.Invoice {
			return nil, fmt.Errorf("%w: a return must reference a sale or invoice, not a %s", apperrors.ErrValidation, linked.Kind)
		}
	}

	// Computing totals up front validates the percentages.
	totals, err := pricing.ComputeTotals(nil, req.DiscountPercent, req.TaxPercent)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	document := domain.Document{
		DocumentID:       uuid.NewString(),
		Kind:             req.Kind,
		Status:           domain.StatusDraft,
		Items:            []domain.LineItem{},
		DiscountPercent:  req.DiscountPercent,
		TaxPercent:       req.TaxPercent,
		LinkedDocumentID: req.LinkedDocumentID,
		Totals:           totals,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, document); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("Document created", slog.String("document_id", document.DocumentID), slog.String("kind", string(document.Kind)))
	return &document, nil
}

// loadDraft fetches a document and ensures it is still editable.
func (s *documentService) loadDraft(ctx context.Context, documentID string) (*domain.Document, error) {
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if !document.IsDraft() {
		return nil, fmt.Errorf("%w: document %s is %s and no longer editable", apperrors.ErrInvalidTransition, documentID, document.Status)
	}
	return document, nil
}

// recompute refreshes the derived totals after a draft mutation.
func (s *documentService) recompute(document *domain.Document) error {
	totals, err := pricing.ComputeTotals(document.Items, document.DiscountPercent, document.TaxPercent)
	if err != nil {
		return err
	}
	document.Totals = totals
	return nil
}

func (s *documentService) saveDraft(ctx context.Context, document *domain.Document, userID string) (*domain.Document, error) {
	if err := s.recompute(document); err != nil {
		return nil, err
	}
	document.LastUpdatedAt = time.Now().UTC()
	document.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *document); err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", document.DocumentID, err)
	}
	return document, nil
}

func (s *documentService) AddItem(ctx context.Context, documentID string, req dto.AddItemRequest, userID string) (*domain.Document, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: line item quantity must be positive, got %d", apperrors.ErrValidation, req.Quantity)
	}

	document, err := s.loadDraft(ctx, documentID)
	if err != nil {
		return nil, err
	}

	product, err := s.productSvc.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", req.ProductID, err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, req.ProductID)
	}

	// Snapshot name and price now: later catalog edits must not alter this
	// document.
	document.Items = append(document.Items, domain.LineItem{
		LineItemID:  uuid.NewString(),
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   product.UnitPrice,
	})

	return s.saveDraft(ctx, document, userID)
}

func (s *documentService) RemoveItem(ctx context.Context, documentID string, lineItemID string, userID string) (*domain.Document, error) {
	document, err := s.loadDraft(ctx, documentID)
	if err != nil {
		return nil, err
	}

	found := false
	items := document.Items[:0]
	for _, item := range document.Items {
		if item.LineItemID == lineItemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, fmt.Errorf("%w: line item %s not on document %s", apperrors.ErrNotFound, lineItemID, documentID)
	}
	document.Items = items

	return s.saveDraft(ctx, document, userID)
}

func (s *documentService) SetDiscount(ctx context.Context, documentID string, req dto.SetPercentRequest, userID string) (*domain.Document, error) {
	document, err := s.loadDraft(ctx, documentID)
	if err != nil {
		return nil, err
	}
	document.DiscountPercent = req.Percent
	return s.saveDraft(ctx, document, userID)
}

func (s *documentService) SetTax(ctx context.Context, documentID string, req dto.SetPercentRequest, userID string) (*domain.Document, error) {
	document, err := s.loadDraft(ctx, documentID)
	if err != nil {
		return nil, err
	}
	document.TaxPercent = req.Percent
	return s.saveDraft(ctx, document, userID)
}

// Commit freezes a draft and applies its stock delta exactly once. On any
// failure the document stays Draft and no quantity is changed.
func (s *documentService) Commit(ctx context.Context, documentID string, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	document, err := s.loadDraft(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(document.Items) == 0 {
		return nil, fmt.Errorf("%w: cannot commit document %s with no line items", apperrors.ErrValidation, documentID)
	}

	target := document.Kind.CommittedStatus()
	if !domain.CanTransition(document.Kind, document.Status, target) {
		return nil, fmt.Errorf("%w: %s cannot move from %s to %s", apperrors.ErrInvalidTransition, document.Kind, document.Status, target)
	}

	// All-or-nothing: the ledger applies every line's delta or none.
	if err := s.stockSvc.ApplyDocumentDeltas(ctx, document.StockDeltas(), domain.MovementCommit, document.DocumentID, userID); err != nil {
		return nil, err
	}

	document.Status = target
	document.LastUpdatedAt = time.Now().UTC()
	document.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *document); err != nil {
		// Compensate so a storage failure cannot leave a phantom delta.
		if revErr := s.stockSvc.ApplyDocumentDeltas(ctx, document.ReversalDeltas(), domain.MovementReversal, document.DocumentID, userID); revErr != nil {
			logger.Error("Failed to reverse stock deltas after commit persistence failure",
				slog.String("document_id", documentID),
				slog.String("error", revErr.Error()))
		}
		return nil, fmt.Errorf("failed to persist committed document %s: %w", documentID, err)
	}

	logger.Info("Document committed",
		slog.String("document_id", documentID),
		slog.String("kind", string(document.Kind)),
		slog.String("status", string(document.Status)))
	return document, nil
}

func (s *documentService) MarkPaid(ctx context.Context, documentID string, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if !domain.CanTransition(document.Kind, document.Status, domain.StatusPaid) {
		return nil, fmt.Errorf("%w: %s in status %s cannot be marked paid", apperrors.ErrInvalidTransition, document.Kind, document.Status)
	}

	// Status-only transition: no recompute, no ledger interaction.
	document.Status = domain.StatusPaid
	document.LastUpdatedAt = time.Now().UTC()
	document.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *document); err != nil {
		return nil, fmt.Errorf("failed to persist paid document %s: %w", documentID, err)
	}

	logger.Info("Document marked paid", slog.String("document_id", documentID))
	return document, nil
}

// Delete removes a document. Post-draft documents have their stock delta
// reversed first (compensating transaction); if the reversal cannot apply,
// the document survives unchanged.
func (s *documentService) Delete(ctx context.Context, documentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	if document.HasStockEffect() {
		if err := s.stockSvc.ApplyDocumentDeltas(ctx, document.ReversalDeltas(), domain.MovementReversal, document.DocumentID, userID); err != nil {
			return err
		}
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		if document.HasStockEffect() {
			// Re-apply the original delta so the ledger matches the
			// still-existing document.
			if reErr := s.stockSvc.ApplyDocumentDeltas(ctx, document.StockDeltas(), domain.MovementCommit, document.DocumentID, userID); reErr != nil {
				logger.Error("Failed to restore stock deltas after delete persistence failure",
					slog.String("document_id", documentID),
					slog.String("error", reErr.Error()))
			}
		}
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}

	logger.Info("Document deleted",
		slog.String("document_id", documentID),
		slog.String("status", string(document.Status)))
	return nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, documentID)
}

func documentColumns() []tabular.Column[domain.Document] {
	return []tabular.Column[domain.Document]{
		{Key: "documentID", Value: func(d domain.Document) any { return d.DocumentID }, Searchable: true},
		{Key: "kind", Value: func(d domain.Document) any { return string(d.Kind) }, Searchable: true},
		{Key: "status", Value: func(d domain.Document) any { return string(d.Status) }, Searchable: true},
		{Key: "totalAmount", Value: func(d domain.Document) any { return d.Totals.TotalAmount }},
		{Key: "createdAt", Value: func(d domain.Document) any { return d.CreatedAt }},
	}
}

func (s *documentService) ListDocuments(ctx context.Context, params dto.ListParams) (*dto.ListDocumentsResponse, error) {
	documents, err := s.documentRepo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	view, err := tabular.View(documents, documentColumns(), params.ToTabular())
	if err != nil {
		return nil, err
	}

	return &dto.ListDocumentsResponse{
		Documents:  dto.ToDocumentResponses(view.Rows),
		TotalCount: view.TotalCount,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}
