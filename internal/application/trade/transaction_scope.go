package trade

import (
	"context"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/inventory"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/trade"
)

// TransactionScope runs a function with repositories bound to a single
// database transaction. If the function returns an error the transaction
// is rolled back, otherwise it is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories a workflow needs
// within one transaction. All of them share the same underlying
// transaction, including the stock ledger, so a failed ledger call rolls
// back every row written before it.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Suppliers() partner.SupplierRepository
	Clients() partner.ClientRepository
	Purchases() trade.PurchaseRepository
	Sales() trade.SaleRepository
	Ledger() inventory.StockLedger
}

// NoOpTransactionScope hands out the given repositories without opening
// a real transaction. Used by service tests.
type NoOpTransactionScope struct {
	products  catalog.ProductRepository
	suppliers partner.SupplierRepository
	clients   partner.ClientRepository
	purchases trade.PurchaseRepository
	sales     trade.SaleRepository
	ledger    inventory.StockLedger
}

func NewNoOpTransactionScope(
	products catalog.ProductRepository,
	suppliers partner.SupplierRepository,
	clients partner.ClientRepository,
	purchases trade.PurchaseRepository,
	sales trade.SaleRepository,
	ledger inventory.StockLedger,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		products:  products,
		suppliers: suppliers,
		clients:   clients,
		purchases: purchases,
		sales:     sales,
		ledger:    ledger,
	}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Products() catalog.ProductRepository   { return s.products }
func (s *NoOpTransactionScope) Suppliers() partner.SupplierRepository { return s.suppliers }
func (s *NoOpTransactionScope) Clients() partner.ClientRepository     { return s.clients }
func (s *NoOpTransactionScope) Purchases() trade.PurchaseRepository   { return s.purchases }
func (s *NoOpTransactionScope) Sales() trade.SaleRepository           { return s.sales }
func (s *NoOpTransactionScope) Ledger() inventory.StockLedger         { return s.ledger }
