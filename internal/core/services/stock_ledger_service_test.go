package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retailcore/backoffice/internal/adapters/database/memory"
	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/core/services"
	"github.com/retailcore/backoffice/internal/dto"
)

type StockLedgerServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   portssvc.StockLedgerSvcFacade
}

func (s *StockLedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.svc = services.NewStockLedgerService(s.store)
}

func (s *StockLedgerServiceTestSuite) seedEntry(productID string, quantity, threshold int64) {
	err := s.store.SaveStockEntry(s.ctx, domain.StockEntry{
		ProductID:        productID,
		Quantity:         quantity,
		MinimumThreshold: threshold,
	})
	s.Require().NoError(err)
}

func (s *StockLedgerServiceTestSuite) quantityOf(productID string) int64 {
	entry, err := s.store.FindStockEntryByProductID(s.ctx, productID)
	s.Require().NoError(err)
	return entry.Quantity
}

func (s *StockLedgerServiceTestSuite) TestCheckAvailability() {
	s.seedEntry("prod-1", 5, 0)

	ok, err := s.svc.CheckAvailability(s.ctx, "prod-1", 5)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.svc.CheckAvailability(s.ctx, "prod-1", 6)
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.svc.CheckAvailability(s.ctx, "prod-1", 0)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.CheckAvailability(s.ctx, "ghost", 1)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StockLedgerServiceTestSuite) TestApplyDocumentDeltasUpdatesAllEntries() {
	s.seedEntry("prod-1", 10, 0)
	s.seedEntry("prod-2", 3, 0)

	err := s.svc.ApplyDocumentDeltas(s.ctx, map[string]int64{
		"prod-1": -4,
		"prod-2": 2,
	}, domain.MovementCommit, "doc-1", "tester")
	s.Require().NoError(err)

	s.EqualValues(6, s.quantityOf("prod-1"))
	s.EqualValues(5, s.quantityOf("prod-2"))

	movements, err := s.svc.ListMovements(s.ctx, "prod-1")
	s.Require().NoError(err)
	s.Require().Len(movements, 1)
	s.EqualValues(-4, movements[0].Quantity)
	s.Equal(domain.MovementCommit, movements[0].Reason)
	s.Equal("doc-1", movements[0].DocumentID)
	s.Equal("tester", movements[0].CreatedBy)
}

func (s *StockLedgerServiceTestSuite) TestApplyDocumentDeltasOversellLeavesBatchUntouched() {
	s.seedEntry("prod-1", 10, 0)
	s.seedEntry("prod-2", 3, 0)

	err := s.svc.ApplyDocumentDeltas(s.ctx, map[string]int64{
		"prod-1": -4,
		"prod-2": -5,
	}, domain.MovementCommit, "doc-1", "tester")
	s.Require().ErrorIs(err, apperrors.ErrInsufficientStock)

	// Nothing moved, not even the line that would have succeeded.
	s.EqualValues(10, s.quantityOf("prod-1"))
	s.EqualValues(3, s.quantityOf("prod-2"))

	movements, err := s.svc.ListMovements(s.ctx, "prod-1")
	s.Require().NoError(err)
	s.Empty(movements)
}

func (s *StockLedgerServiceTestSuite) TestApplyDocumentDeltasUnknownProductRejectsBatch() {
	s.seedEntry("prod-1", 10, 0)

	err := s.svc.ApplyDocumentDeltas(s.ctx, map[string]int64{
		"prod-1": -1,
		"ghost":  -1,
	}, domain.MovementCommit, "doc-1", "tester")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.EqualValues(10, s.quantityOf("prod-1"))
}

func (s *StockLedgerServiceTestSuite) TestApplyDocumentDeltasEmptyBatch() {
	err := s.svc.ApplyDocumentDeltas(s.ctx, nil, domain.MovementCommit, "doc-1", "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *StockLedgerServiceTestSuite) TestReversalRestoresQuantities() {
	s.seedEntry("prod-1", 10, 0)
	s.seedEntry("prod-2", 7, 0)

	deltas := map[string]int64{"prod-1": -2, "prod-2": -3}
	s.Require().NoError(s.svc.ApplyDocumentDeltas(s.ctx, deltas, domain.MovementCommit, "doc-1", "tester"))
	s.EqualValues(8, s.quantityOf("prod-1"))
	s.EqualValues(4, s.quantityOf("prod-2"))

	reversal := map[string]int64{"prod-1": 2, "prod-2": 3}
	s.Require().NoError(s.svc.ApplyDocumentDeltas(s.ctx, reversal, domain.MovementReversal, "doc-1", "tester"))
	s.EqualValues(10, s.quantityOf("prod-1"))
	s.EqualValues(7, s.quantityOf("prod-2"))
}

func (s *StockLedgerServiceTestSuite) TestAdjustAdd() {
	s.seedEntry("prod-1", 5, 0)

	entry, err := s.svc.Adjust(s.ctx, "prod-1", dto.AdjustStockRequest{Mode: domain.AdjustAdd, Amount: 3}, "tester")
	s.Require().NoError(err)
	s.EqualValues(8, entry.Quantity)
}

func (s *StockLedgerServiceTestSuite) TestAdjustSubtractClampsAtZero() {
	s.seedEntry("prod-1", 5, 0)

	entry, err := s.svc.Adjust(s.ctx, "prod-1", dto.AdjustStockRequest{Mode: domain.AdjustSubtract, Amount: 8}, "tester")
	s.Require().NoError(err)
	s.EqualValues(0, entry.Quantity)

	// The movement records what was actually removed, not what was asked.
	movements, err := s.svc.ListMovements(s.ctx, "prod-1")
	s.Require().NoError(err)
	s.Require().Len(movements, 1)
	s.EqualValues(-5, movements[0].Quantity)
	s.Equal(domain.MovementAdjustment, movements[0].Reason)
}

func (s *StockLedgerServiceTestSuite) TestAdjustSet() {
	s.seedEntry("prod-1", 5, 0)

	entry, err := s.svc.Adjust(s.ctx, "prod-1", dto.AdjustStockRequest{Mode: domain.AdjustSet, Amount: 42}, "tester")
	s.Require().NoError(err)
	s.EqualValues(42, entry.Quantity)
}

func (s *StockLedgerServiceTestSuite) TestAdjustInvalidInput() {
	s.seedEntry("prod-1", 5, 0)

	_, err := s.svc.Adjust(s.ctx, "prod-1", dto.AdjustStockRequest{Mode: "SHRINK", Amount: 1}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Adjust(s.ctx, "prod-1", dto.AdjustStockRequest{Mode: domain.AdjustAdd, Amount: -1}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Adjust(s.ctx, "ghost", dto.AdjustStockRequest{Mode: domain.AdjustAdd, Amount: 1}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StockLedgerServiceTestSuite) TestCreateStockEntryValidation() {
	err := s.svc.CreateStockEntry(s.ctx, domain.StockEntry{ProductID: "prod-1", Quantity: -1})
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	err = s.svc.CreateStockEntry(s.ctx, domain.StockEntry{ProductID: "prod-1", MinimumThreshold: -1})
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	s.Require().NoError(s.svc.CreateStockEntry(s.ctx, domain.StockEntry{ProductID: "prod-1", Quantity: 5}))
	err = s.svc.CreateStockEntry(s.ctx, domain.StockEntry{ProductID: "prod-1", Quantity: 5})
	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *StockLedgerServiceTestSuite) TestListLowStock() {
	s.seedEntry("prod-1", 2, 5)
	s.seedEntry("prod-2", 10, 5)
	s.seedEntry("prod-3", 5, 5)

	// ListStockEntries follows product registration order.
	for _, id := range []string{"prod-1", "prod-2", "prod-3"} {
		s.Require().NoError(s.store.SaveProduct(s.ctx, domain.Product{ProductID: id, SKU: "sku-" + id}))
	}

	low, err := s.svc.ListLowStock(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(low, 2)
	s.Equal("prod-1", low[0].ProductID)
	s.Equal("prod-3", low[1].ProductID)
}

func (s *StockLedgerServiceTestSuite) TestListMovementsNewestFirst() {
	s.seedEntry("prod-1", 10, 0)

	s.Require().NoError(s.svc.ApplyDocumentDeltas(s.ctx, map[string]int64{"prod-1": -2}, domain.MovementCommit, "doc-1", "tester"))
	s.Require().NoError(s.svc.ApplyDocumentDeltas(s.ctx, map[string]int64{"prod-1": -3}, domain.MovementCommit, "doc-2", "tester"))

	movements, err := s.svc.ListMovements(s.ctx, "prod-1")
	s.Require().NoError(err)
	s.Require().Len(movements, 2)
	s.Equal("doc-2", movements[0].DocumentID)
	s.Equal("doc-1", movements[1].DocumentID)

	_, err = s.svc.ListMovements(s.ctx, "ghost")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StockLedgerServiceTestSuite) TestListStockPagination() {
	for _, id := range []string{"prod-1", "prod-2", "prod-3"} {
		s.Require().NoError(s.store.SaveProduct(s.ctx, domain.Product{ProductID: id, SKU: "sku-" + id}))
		s.seedEntry(id, 1, 0)
	}

	resp, err := s.svc.ListStock(s.ctx, dto.ListParams{Page: 2, PageSize: 2})
	s.Require().NoError(err)
	s.Equal(3, resp.TotalCount)
	s.Require().Len(resp.Entries, 1)
	s.Equal("prod-3", resp.Entries[0].ProductID)
}

func TestStockLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockLedgerServiceTestSuite))
}
