// Package memory provides a mutex-guarded in-memory implementation of the
// repository ports. It backs the application when no database is configured
// and doubles as the repository fake in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/retailcore/backoffice/internal/apperrors"
	"github.com/retailcore/backoffice/internal/core/domain"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
)

// Store holds all collections behind a single mutex. Stock batch operations
// run inside one critical section, which gives ApplyDeltas its required
// all-or-nothing, no-interleaving semantics.
type Store struct {
	mu            sync.RWMutex
	products      map[string]domain.Product
	productsBySKU map[string]string
	productOrder  []string
	stock         map[string]domain.StockEntry
	movements     map[string][]domain.StockMovement
	documents     map[string]domain.Document
	documentOrder []string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		products:      make(map[string]domain.Product),
		productsBySKU: make(map[string]string),
		stock:         make(map[string]domain.StockEntry),
		movements:     make(map[string][]domain.StockMovement),
		documents:     make(map[string]domain.Document),
	}
}

var (
	_ portsrepo.ProductRepositoryFacade  = (*Store)(nil)
	_ portsrepo.StockRepositoryFacade    = (*Store)(nil)
	_ portsrepo.DocumentRepositoryFacade = (*Store)(nil)
)

// --- Products ---

func (s *Store) SaveProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[product.ProductID]; exists {
		return fmt.Errorf("%w: product %s", apperrors.ErrDuplicate, product.ProductID)
	}
	if _, exists := s.productsBySKU[product.SKU]; exists {
		return fmt.Errorf("%w: SKU %s", apperrors.ErrDuplicate, product.SKU)
	}
	s.products[product.ProductID] = product
	s.productsBySKU[product.SKU] = product.ProductID
	s.productOrder = append(s.productOrder, product.ProductID)
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, exists := s.products[product.ProductID]
	if !exists {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, product.ProductID)
	}
	if existing.SKU != product.SKU {
		delete(s.productsBySKU, existing.SKU)
		s.productsBySKU[product.SKU] = product.ProductID
	}
	s.products[product.ProductID] = product
	return nil
}

func (s *Store) FindProductByID(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, exists := s.products[productID]
	if !exists {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return &product, nil
}

func (s *Store) FindProductBySKU(_ context.Context, sku string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	productID, exists := s.productsBySKU[sku]
	if !exists {
		return nil, fmt.Errorf("%w: SKU %s", apperrors.ErrNotFound, sku)
	}
	product := s.products[productID]
	return &product, nil
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		products = append(products, s.products[id])
	}
	return products, nil
}

// --- Stock ---

func (s *Store) SaveStockEntry(_ context.Context, entry domain.StockEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.stock[entry.ProductID]; exists {
		return fmt.Errorf("%w: stock entry for product %s", apperrors.ErrDuplicate, entry.ProductID)
	}
	s.stock[entry.ProductID] = entry
	return nil
}

func (s *Store) FindStockEntryByProductID(_ context.Context, productID string) (*domain.StockEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, exists := s.stock[productID]
	if !exists {
		return nil, fmt.Errorf("%w: stock entry for product %s", apperrors.ErrNotFound, productID)
	}
	return &entry, nil
}

func (s *Store) ListStockEntries(_ context.Context) ([]domain.StockEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.StockEntry, 0, len(s.stock))
	for _, id := range s.productOrder {
		if entry, exists := s.stock[id]; exists {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// ApplyDeltas validates the whole batch before touching anything, so a
// rejected line leaves every entry as it was.
func (s *Store) ApplyDeltas(_ context.Context, deltas map[string]int64, movements []domain.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for productID, delta := range deltas {
		entry, exists := s.stock[productID]
		if !exists {
			return fmt.Errorf("%w: stock entry for product %s", apperrors.ErrNotFound, productID)
		}
		if entry.Quantity+delta < 0 {
			return fmt.Errorf("%w: product %s has %d on hand, delta %d", apperrors.ErrInsufficientStock, productID, entry.Quantity, delta)
		}
	}

	for productID, delta := range deltas {
		entry := s.stock[productID]
		entry.Quantity += delta
		s.stock[productID] = entry
	}
	for _, movement := range movements {
		s.movements[movement.ProductID] = append(s.movements[movement.ProductID], movement)
	}
	return nil
}

func (s *Store) AdjustQuantity(_ context.Context, productID string, mode domain.AdjustMode, amount int64, movement domain.StockMovement) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.stock[productID]
	if !exists {
		return 0, fmt.Errorf("%w: stock entry for product %s", apperrors.ErrNotFound, productID)
	}

	newQuantity := entry.Quantity
	switch mode {
	case domain.AdjustAdd:
		newQuantity += amount
	case domain.AdjustSubtract:
		newQuantity -= amount
		if newQuantity < 0 {
			newQuantity = 0 // manual corrections clamp, unlike commits
		}
	case domain.AdjustSet:
		newQuantity = amount
	default:
		return 0, fmt.Errorf("%w: unknown adjust mode %q", apperrors.ErrValidation, mode)
	}

	movement.Quantity = newQuantity - entry.Quantity
	entry.Quantity = newQuantity
	s.stock[productID] = entry
	s.movements[productID] = append(s.movements[productID], movement)
	return newQuantity, nil
}

func (s *Store) ListMovementsByProductID(_ context.Context, productID string) ([]domain.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.movements[productID]
	movements := make([]domain.StockMovement, len(stored))
	for i, movement := range stored {
		movements[len(stored)-1-i] = movement // newest first
	}
	return movements, nil
}

// --- Documents ---

func (s *Store) SaveDocument(_ context.Context, document domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[document.DocumentID]; exists {
		return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, document.DocumentID)
	}
	s.documents[document.DocumentID] = copyDocument(document)
	s.documentOrder = append(s.documentOrder, document.DocumentID)
	return nil
}

func (s *Store) UpdateDocument(_ context.Context, document domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[document.DocumentID]; !exists {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, document.DocumentID)
	}
	s.documents[document.DocumentID] = copyDocument(document)
	return nil
}

func (s *Store) DeleteDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[documentID]; !exists {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
	}
	delete(s.documents, documentID)
	for i, id := range s.documentOrder {
		if id == documentID {
			s.documentOrder = append(s.documentOrder[:i], s.documentOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) FindDocumentByID(_ context.Context, documentID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	document, exists := s.documents[documentID]
	if !exists {
		return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
	}
	copied := copyDocument(document)
	return &copied, nil
}

func (s *Store) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	documents := make([]domain.Document, 0, len(s.documentOrder))
	for _, id := range s.documentOrder {
		documents = append(documents, copyDocument(s.documents[id]))
	}
	return documents, nil
}

// copyDocument detaches the items slice so callers cannot alias stored state.
func copyDocument(document domain.Document) domain.Document {
	items := make([]domain.LineItem, len(document.Items))
	copy(items, document.Items)
	document.Items = items
	return document
}
