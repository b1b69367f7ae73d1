package services

// ServiceContainer holds all service facades for handler registration.
type ServiceContainer struct {
	Product  ProductSvcFacade
	Stock    StockLedgerSvcFacade
	Document DocumentSvcFacade
}
