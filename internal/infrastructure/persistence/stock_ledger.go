package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/backoffice/backend/internal/domain/inventory"
	"github.com/backoffice/backend/internal/domain/shared"
)

// GormStockLedger implements inventory.StockLedger. It locks the product
// row for the remainder of the surrounding transaction, applies the
// change through the aggregate and appends a movement record. It must be
// constructed with a transaction-scoped *gorm.DB; see GormTransactionScope.
type GormStockLedger struct {
	db       *gorm.DB
	products *GormProductRepository
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{
		db:       db,
		products: NewGormProductRepository(db),
	}
}

// Increase adds quantity to the product's stock
func (l *GormStockLedger) Increase(ctx context.Context, productID uuid.UUID, quantity int64, source inventory.MovementSource, sourceID uuid.UUID) error {
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Unknown movement source")
	}

	product, err := l.products.FindByIDForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.IncreaseStock(quantity); err != nil {
		return err
	}
	if err := l.products.Save(ctx, product); err != nil {
		return err
	}

	movement := inventory.NewStockMovement(productID, inventory.DirectionIn, quantity, source, sourceID, product.Stock)
	return l.db.WithContext(ctx).Create(movement).Error
}

// Decrease removes quantity from the product's stock. The decrement is
// refused entirely when the on-hand quantity is insufficient.
func (l *GormStockLedger) Decrease(ctx context.Context, productID uuid.UUID, quantity int64, source inventory.MovementSource, sourceID uuid.UUID) error {
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Unknown movement source")
	}

	product, err := l.products.FindByIDForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.DecreaseStock(quantity); err != nil {
		return err
	}
	if err := l.products.Save(ctx, product); err != nil {
		return err
	}

	movement := inventory.NewStockMovement(productID, inventory.DirectionOut, quantity, source, sourceID, product.Stock)
	return l.db.WithContext(ctx).Create(movement).Error
}

// GormMovementRepository implements inventory.MovementRepository
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByProduct lists movements of one product, newest first
func (r *GormMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.StockMovement], error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var movements []inventory.StockMovement
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Order("occurred_at desc").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(movements, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindBySource lists the movements recorded for one business operation
func (r *GormMovementRepository) FindBySource(ctx context.Context, source inventory.MovementSource, sourceID uuid.UUID) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	err := r.db.WithContext(ctx).
		Where("source = ? AND source_id = ?", source, sourceID).
		Order("occurred_at asc").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
