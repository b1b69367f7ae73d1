package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/retailcore/backoffice/internal/adapters/database/memory"
	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/core/services"
	"github.com/retailcore/backoffice/internal/dto"
)

// DocumentServiceTestSuite exercises the full document lifecycle through the
// real service container backed by the in-memory store, so stock effects and
// totals are observed end to end.
type DocumentServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	services *portssvc.ServiceContainer
}

func (s *DocumentServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.services = services.NewServiceContainer(portsrepo.RepositoryProvider{
		ProductRepo:  s.store,
		StockRepo:    s.store,
		DocumentRepo: s.store,
	})
}

func (s *DocumentServiceTestSuite) createProduct(sku string, price string, quantity int64) string {
	product, err := s.services.Product.CreateProduct(s.ctx, dto.CreateProductRequest{
		SKU:             sku,
		Name:            "Product " + sku,
		UnitPrice:       decimal.RequireFromString(price),
		InitialQuantity: quantity,
	}, "tester")
	s.Require().NoError(err)
	return product.ProductID
}

func (s *DocumentServiceTestSuite) createDraft(kind domain.DocumentKind) string {
	document, err := s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{Kind: kind}, "tester")
	s.Require().NoError(err)
	s.Require().Equal(domain.StatusDraft, document.Status)
	return document.DocumentID
}

func (s *DocumentServiceTestSuite) addItem(documentID, productID string, quantity int64) {
	_, err := s.services.Document.AddItem(s.ctx, documentID, dto.AddItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	}, "tester")
	s.Require().NoError(err)
}

func (s *DocumentServiceTestSuite) quantityOf(productID string) int64 {
	entry, err := s.services.Stock.GetStockEntry(s.ctx, productID)
	s.Require().NoError(err)
	return entry.Quantity
}

func (s *DocumentServiceTestSuite) TestCreateDocumentValidation() {
	_, err := s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{Kind: "RECEIPT"}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:       domain.Sale,
		TaxPercent: decimal.NewFromInt(101),
	}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *DocumentServiceTestSuite) TestCreateReturnRequiresLinkedSale() {
	_, err := s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{Kind: domain.Return}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:             domain.Return,
		LinkedDocumentID: "ghost",
	}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)

	poID := s.createDraft(domain.PurchaseOrder)
	_, err = s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:             domain.Return,
		LinkedDocumentID: poID,
	}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	saleID := s.createDraft(domain.Sale)
	ret, err := s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:             domain.Return,
		LinkedDocumentID: saleID,
	}, "tester")
	s.Require().NoError(err)
	s.Equal(saleID, ret.LinkedDocumentID)
}

func (s *DocumentServiceTestSuite) TestAddItemSnapshotsAndRecomputes() {
	productID := s.createProduct("WIDGET-1", "100", 50)
	documentID := s.createDraft(domain.Sale)

	_, err := s.services.Document.SetDiscount(s.ctx, documentID, dto.SetPercentRequest{Percent: decimal.NewFromInt(10)}, "tester")
	s.Require().NoError(err)
	_, err = s.services.Document.SetTax(s.ctx, documentID, dto.SetPercentRequest{Percent: decimal.NewFromInt(15)}, "tester")
	s.Require().NoError(err)

	document, err := s.services.Document.AddItem(s.ctx, documentID, dto.AddItemRequest{
		ProductID: productID,
		Quantity:  3,
	}, "tester")
	s.Require().NoError(err)

	s.Require().Len(document.Items, 1)
	s.Equal("Product WIDGET-1", document.Items[0].ProductName)
	s.True(document.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))

	s.True(document.Totals.Subtotal.Equal(decimal.NewFromInt(300)))
	s.True(document.Totals.DiscountAmount.Equal(decimal.NewFromInt(30)))
	s.True(document.Totals.TaxableAmount.Equal(decimal.NewFromInt(270)))
	s.True(document.Totals.TaxAmount.Equal(decimal.RequireFromString("40.5")))
	s.True(document.Totals.TotalAmount.Equal(decimal.RequireFromString("310.5")))

	// A later price change must not alter the document.
	newPrice := decimal.NewFromInt(999)
	_, err = s.services.Product.UpdateProduct(s.ctx, productID, dto.UpdateProductRequest{UnitPrice: &newPrice}, "tester")
	s.Require().NoError(err)

	reloaded, err := s.services.Document.GetDocumentByID(s.ctx, documentID)
	s.Require().NoError(err)
	s.True(reloaded.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
}

func (s *DocumentServiceTestSuite) TestAddItemValidation() {
	productID := s.createProduct("WIDGET-1", "10", 5)
	documentID := s.createDraft(domain.Sale)

	_, err := s.services.Document.AddItem(s.ctx, documentID, dto.AddItemRequest{ProductID: productID, Quantity: 0}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.services.Document.AddItem(s.ctx, documentID, dto.AddItemRequest{ProductID: "ghost", Quantity: 1}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)

	s.Require().NoError(s.services.Product.DeactivateProduct(s.ctx, productID, "tester"))
	_, err = s.services.Document.AddItem(s.ctx, documentID, dto.AddItemRequest{ProductID: productID, Quantity: 1}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *DocumentServiceTestSuite) TestRemoveItemRecomputesTotals() {
	productID := s.createProduct("WIDGET-1", "100", 50)
	documentID := s.createDraft(domain.Sale)
	s.addItem(documentID, productID, 3)

	document, err := s.services.Document.GetDocumentByID(s.ctx, documentID)
	s.Require().NoError(err)
	lineItemID := document.Items[0].LineItemID

	document, err = s.services.Document.RemoveItem(s.ctx, documentID, lineItemID, "tester")
	s.Require().NoError(err)
	s.Empty(document.Items)
	s.True(document.Totals.TotalAmount.IsZero())

	_, err = s.services.Document.RemoveItem(s.ctx, documentID, "ghost", "tester")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *DocumentServiceTestSuite) TestCommitSaleConsumesStockExactlyOnce() {
	productID := s.createProduct("WIDGET-1", "20", 5)
	documentID := s.createDraft(domain.Sale)
	s.addItem(documentID, productID, 5)

	document, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().NoError(err)
	s.Equal(domain.StatusCommitted, document.Status)
	s.EqualValues(0, s.quantityOf(productID))

	// Already committed: no second application of the delta.
	_, err = s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
	s.EqualValues(0, s.quantityOf(productID))
}

func (s *DocumentServiceTestSuite) TestCommitOversellLeavesDocumentDraftAndStockUntouched() {
	firstID := s.createProduct("WIDGET-1", "20", 10)
	secondID := s.createProduct("WIDGET-2", "30", 1)
	documentID := s.createDraft(domain.Sale)
	s.addItem(documentID, firstID, 4)
	s.addItem(documentID, secondID, 2)

	_, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInsufficientStock)

	document, err := s.services.Document.GetDocumentByID(s.ctx, documentID)
	s.Require().NoError(err)
	s.Equal(domain.StatusDraft, document.Status)
	s.EqualValues(10, s.quantityOf(firstID))
	s.EqualValues(1, s.quantityOf(secondID))
}

func (s *DocumentServiceTestSuite) TestCommitEmptyDocument() {
	documentID := s.createDraft(domain.Sale)
	_, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *DocumentServiceTestSuite) TestCommitPurchaseOrderRestocks() {
	productID := s.createProduct("WIDGET-1", "20", 2)
	documentID := s.createDraft(domain.PurchaseOrder)
	s.addItem(documentID, productID, 8)

	document, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().NoError(err)
	s.Equal(domain.StatusCommitted, document.Status)
	s.EqualValues(10, s.quantityOf(productID))
}

func (s *DocumentServiceTestSuite) TestCommitReturnRestocksAndProcesses() {
	productID := s.createProduct("WIDGET-1", "20", 10)

	saleID := s.createDraft(domain.Sale)
	s.addItem(saleID, productID, 4)
	_, err := s.services.Document.Commit(s.ctx, saleID, "tester")
	s.Require().NoError(err)
	s.EqualValues(6, s.quantityOf(productID))

	ret, err := s.services.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:             domain.Return,
		LinkedDocumentID: saleID,
	}, "tester")
	s.Require().NoError(err)
	s.addItem(ret.DocumentID, productID, 1)

	committed, err := s.services.Document.Commit(s.ctx, ret.DocumentID, "tester")
	s.Require().NoError(err)
	s.Equal(domain.StatusProcessed, committed.Status)
	s.EqualValues(7, s.quantityOf(productID))
}

func (s *DocumentServiceTestSuite) TestEditAfterCommitRejected() {
	productID := s.createProduct("WIDGET-1", "20", 10)
	documentID := s.createDraft(domain.Sale)
	s.addItem(documentID, productID, 1)
	_, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().NoError(err)

	_, err = s.services.Document.AddItem(s.ctx, documentID, dto.AddItemRequest{ProductID: productID, Quantity: 1}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)

	_, err = s.services.Document.SetDiscount(s.ctx, documentID, dto.SetPercentRequest{Percent: decimal.NewFromInt(5)}, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *DocumentServiceTestSuite) TestMarkPaid() {
	productID := s.createProduct("WIDGET-1", "20", 10)
	documentID := s.createDraft(domain.Sale)
	s.addItem(documentID, productID, 1)

	// Draft cannot be paid.
	_, err := s.services.Document.MarkPaid(s.ctx, documentID, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)

	_, err = s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().NoError(err)

	document, err := s.services.Document.MarkPaid(s.ctx, documentID, "tester")
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, document.Status)
	s.EqualValues(9, s.quantityOf(productID))

	// Paid is terminal.
	_, err = s.services.Document.MarkPaid(s.ctx, documentID, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *DocumentServiceTestSuite) TestMarkPaidPurchaseOrderRejected() {
	productID := s.createProduct("WIDGET-1", "20", 10)
	documentID := s.createDraft(domain.PurchaseOrder)
	s.addItem(documentID, productID, 1)
	_, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().NoError(err)

	_, err = s.services.Document.MarkPaid(s.ctx, documentID, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *DocumentServiceTestSuite) TestDeleteCommittedSaleRestoresStock() {
	productID := s.createProduct("WIDGET-1", "20", 10)
	documentID := s.createDraft(domain.Sale)
	s.addItem(documentID, productID, 2)
	_, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().NoError(err)
	s.EqualValues(8, s.quantityOf(productID))

	s.Require().NoError(s.services.Document.Delete(s.ctx, documentID, "tester"))
	s.EqualValues(10, s.quantityOf(productID))

	_, err = s.services.Document.GetDocumentByID(s.ctx, documentID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)

	movements, err := s.services.Stock.ListMovements(s.ctx, productID)
	s.Require().NoError(err)
	s.Require().Len(movements, 2)
	s.Equal(domain.MovementReversal, movements[0].Reason)
	s.EqualValues(2, movements[0].Quantity)
	s.Equal(domain.MovementCommit, movements[1].Reason)
	s.EqualValues(-2, movements[1].Quantity)
}

func (s *DocumentServiceTestSuite) TestDeleteDraftLeavesStockAlone() {
	productID := s.createProduct("WIDGET-1", "20", 10)
	documentID := s.createDraft(domain.Sale)
	s.addItem(documentID, productID, 2)

	s.Require().NoError(s.services.Document.Delete(s.ctx, documentID, "tester"))
	s.EqualValues(10, s.quantityOf(productID))

	movements, err := s.services.Stock.ListMovements(s.ctx, productID)
	s.Require().NoError(err)
	s.Empty(movements)
}

func (s *DocumentServiceTestSuite) TestDeleteCommittedPurchaseOrderRemovesReceivedStock() {
	productID := s.createProduct("WIDGET-1", "20", 0)
	documentID := s.createDraft(domain.PurchaseOrder)
	s.addItem(documentID, productID, 5)
	_, err := s.services.Document.Commit(s.ctx, documentID, "tester")
	s.Require().NoError(err)
	s.EqualValues(5, s.quantityOf(productID))

	// Received quantity already sold elsewhere: the reversal would oversell,
	// so the delete is refused and the document survives.
	saleID := s.createDraft(domain.Sale)
	s.addItem(saleID, productID, 3)
	_, err = s.services.Document.Commit(s.ctx, saleID, "tester")
	s.Require().NoError(err)
	s.EqualValues(2, s.quantityOf(productID))

	err = s.services.Document.Delete(s.ctx, documentID, "tester")
	s.Require().ErrorIs(err, apperrors.ErrInsufficientStock)
	s.EqualValues(2, s.quantityOf(productID))

	document, err := s.services.Document.GetDocumentByID(s.ctx, documentID)
	s.Require().NoError(err)
	s.Equal(domain.StatusCommitted, document.Status)
}

func (s *DocumentServiceTestSuite) TestListDocumentsSearchAndPaging() {
	productID := s.createProduct("WIDGET-1", "20", 100)

	for i := 0; i < 3; i++ {
		documentID := s.createDraft(domain.Sale)
		s.addItem(documentID, productID, 1)
	}
	s.createDraft(domain.PurchaseOrder)

	resp, err := s.services.Document.ListDocuments(s.ctx, dto.ListParams{Search: "purchase", Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(1, resp.TotalCount)
	s.Require().Len(resp.Documents, 1)
	s.Equal(domain.PurchaseOrder, resp.Documents[0].Kind)

	resp, err = s.services.Document.ListDocuments(s.ctx, dto.ListParams{Page: 2, PageSize: 3})
	s.Require().NoError(err)
	s.Equal(4, resp.TotalCount)
	s.Len(resp.Documents, 1)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
