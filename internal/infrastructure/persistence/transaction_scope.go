package persistence

import (
	"context"

	"gorm.io/gorm"

	apptrade "github.com/backoffice/backend/internal/application/trade"
	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/inventory"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/trade"
)

// GormTransactionScope implements apptrade.TransactionScope on top of
// gorm transactions. Every Execute call opens one database transaction
// and hands out repositories bound to it.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

// txRepositories hands out repositories bound to one transaction
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *txRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *txRepositories) Clients() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *txRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *txRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *txRepositories) Ledger() inventory.StockLedger {
	return NewGormStockLedger(r.tx)
}
