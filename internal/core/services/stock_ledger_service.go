package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/dto"
	"github.com/retailcore/backoffice/internal/middleware"
	"github.com/retailcore/backoffice/internal/utils/tabular"
)

// stockLedgerService owns all stock quantity mutations. Atomicity of a batch
// lives in the repository adapter; this service derives the movements,
// validates input and keeps every other component away from raw quantities.
type stockLedgerService struct {
	stockRepo portsrepo.StockRepositoryFacade
}

// NewStockLedgerService creates a new stock ledger service.
func NewStockLedgerService(stockRepo portsrepo.StockRepositoryFacade) portssvc.StockLedgerSvcFacade {
	return &stockLedgerService{stockRepo: stockRepo}
}

var _ portssvc.StockLedgerSvcFacade = (*stockLedgerService)(nil)

func (s *stockLedgerService) CheckAvailability(ctx context.Context, productID string, quantity int64) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("%w: requested quantity must be positive, got %d", apperrors.ErrValidation, quantity)
	}
	entry, err := s.stockRepo.FindStockEntryByProductID(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("failed to find stock entry for product %s: %w", productID, err)
	}
	return quantity <= entry.Quantity, nil
}

func (s *stockLedgerService) ApplyDocumentDeltas(ctx context.Context, deltas map[string]int64, reason domain.MovementReason, documentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(deltas) == 0 {
		return fmt.Errorf("%w: no deltas to apply for document %s", apperrors.ErrValidation, documentID)
	}

	now := time.Now().UTC()
	movements := make([]domain.StockMovement, 0, len(deltas))
	// Sorted for a deterministic movement order and a stable lock order in
	// the persistence adapter.
	productIDs := make([]string, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}
	sort.Strings(productIDs)
	for _, productID := range productIDs {
		movements = append(movements, domain.StockMovement{
			MovementID: uuid.NewString(),
			ProductID:  productID,
			Quantity:   deltas[productID],
			Reason:     reason,
			DocumentID: documentID,
			CreatedAt:  now,
			CreatedBy:  userID,
		})
	}

	if err := s.stockRepo.ApplyDeltas(ctx, deltas, movements); err != nil {
		logger.Warn("Stock delta batch rejected",
			slog.String("document_id", documentID),
			slog.String("reason", string(reason)),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stock deltas applied",
		slog.String("document_id", documentID),
		slog.String("reason", string(reason)),
		slog.Int("product_count", len(deltas)))
	return nil
}

func (s *stockLedgerService) Adjust(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.StockEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch req.Mode {
	case domain.AdjustAdd, domain.AdjustSubtract, domain.AdjustSet:
	default:
		return nil, fmt.Errorf("%w: unknown adjust mode %q", apperrors.ErrValidation, req.Mode)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: adjustment amount must not be negative, got %d", apperrors.ErrValidation, req.Amount)
	}

	movement := domain.StockMovement{
		MovementID: uuid.NewString(),
		ProductID:  productID,
		Reason:     domain.MovementAdjustment,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  userID,
	}

	newQuantity, err := s.stockRepo.AdjustQuantity(ctx, productID, req.Mode, req.Amount, movement)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock for product %s: %w", productID, err)
	}

	logger.Info("Stock adjusted",
		slog.String("product_id", productID),
		slog.String("mode", string(req.Mode)),
		slog.Int64("amount", req.Amount),
		slog.Int64("new_quantity", newQuantity))

	entry, err := s.stockRepo.FindStockEntryByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload stock entry for product %s: %w", productID, err)
	}
	return entry, nil
}

func (s *stockLedgerService) CreateStockEntry(ctx context.Context, entry domain.StockEntry) error {
	if entry.Quantity < 0 {
		return fmt.Errorf("%w: initial quantity must not be negative, got %d", apperrors.ErrValidation, entry.Quantity)
	}
	if entry.MinimumThreshold < 0 {
		return fmt.Errorf("%w: minimum threshold must not be negative, got %d", apperrors.ErrValidation, entry.MinimumThreshold)
	}
	return s.stockRepo.SaveStockEntry(ctx, entry)
}

func (s *stockLedgerService) GetStockEntry(ctx context.Context, productID string) (*domain.StockEntry, error) {
	return s.stockRepo.FindStockEntryByProductID(ctx, productID)
}

func stockColumns() []tabular.Column[domain.StockEntry] {
	return []tabular.Column[domain.StockEntry]{
		{Key: "productID", Value: func(e domain.StockEntry) any { return e.ProductID }, Searchable: true},
		{Key: "quantity", Value: func(e domain.StockEntry) any { return e.Quantity }},
		{Key: "minimumThreshold", Value: func(e domain.StockEntry) any { return e.MinimumThreshold }},
	}
}

func (s *stockLedgerService) ListStock(ctx context.Context, params dto.ListParams) (*dto.ListStockResponse, error) {
	entries, err := s.stockRepo.ListStockEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock entries: %w", err)
	}

	view, err := tabular.View(entries, stockColumns(), params.ToTabular())
	if err != nil {
		return nil, err
	}

	return &dto.ListStockResponse{
		Entries:    dto.ToStockEntryResponses(view.Rows),
		TotalCount: view.TotalCount,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}

func (s *stockLedgerService) ListLowStock(ctx context.Context) ([]domain.StockEntry, error) {
	entries, err := s.stockRepo.ListStockEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock entries: %w", err)
	}
	low := make([]domain.StockEntry, 0)
	for _, entry := range entries {
		if entry.IsLow() {
			low = append(low, entry)
		}
	}
	return low, nil
}

func (s *stockLedgerService) ListMovements(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	if _, err := s.stockRepo.FindStockEntryByProductID(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to find stock entry for product %s: %w", productID, err)
	}
	return s.stockRepo.ListMovementsByProductID(ctx, productID)
}
