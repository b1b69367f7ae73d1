package services

import (
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The stock ledger comes first: both other services depend on it.
	container.Stock = NewStockLedgerService(repos.StockRepo)
	container.Product = NewProductService(repos.ProductRepo, container.Stock)
	container.Document = NewDocumentService(repos.DocumentRepo, container.Product, container.Stock)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.StockLedgerSvcFacade = (*stockLedgerService)(nil)
	_ portssvc.ProductSvcFacade     = (*productService)(nil)
	_ portssvc.DocumentSvcFacade    = (*documentService)(nil)
)
