package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// MovementDirection marks whether a movement adds to or removes from stock.
type MovementDirection string

const (
	DirectionIn  MovementDirection = "in"
	DirectionOut MovementDirection = "out"
)

// MovementSource identifies the business operation that caused a movement.
type MovementSource string

const (
	SourcePurchase         MovementSource = "purchase"
	SourceSale             MovementSource = "sale"
	SourceSaleCancellation MovementSource = "sale_cancellation"
	SourceAdjustment       MovementSource = "adjustment"
)

func (s MovementSource) IsValid() bool {
	switch s {
	case SourcePurchase, SourceSale, SourceSaleCancellation, SourceAdjustment:
		return true
	}
	return false
}

// StockMovement is an append-only record of a single stock change.
// Movements are never updated or deleted once written.
type StockMovement struct {
	shared.BaseEntity
	ProductID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	Direction  MovementDirection `gorm:"type:varchar(10);not null" json:"direction"`
	Quantity   int64             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Source     MovementSource    `gorm:"type:varchar(30);not null;index" json:"source"`
	SourceID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"source_id"`
	StockAfter int64             `gorm:"not null" json:"stock_after"`
	OccurredAt time.Time         `gorm:"not null" json:"occurred_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

func NewStockMovement(productID uuid.UUID, direction MovementDirection, quantity int64, source MovementSource, sourceID uuid.UUID, stockAfter int64) *StockMovement {
	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Direction:  direction,
		Quantity:   quantity,
		Source:     source,
		SourceID:   sourceID,
		StockAfter: stockAfter,
		OccurredAt: time.Now(),
	}
}

// StockLedger is the single entry point for stock changes. Both methods
// must run inside the caller's transaction so the product row lock and
// the movement record commit or roll back together.
//
// Decrease returns shared.ErrInsufficientStock when the product's stock
// is lower than the requested quantity, leaving the stock untouched.
type StockLedger interface {
	Increase(ctx context.Context, productID uuid.UUID, quantity int64, source MovementSource, sourceID uuid.UUID) error
	Decrease(ctx context.Context, productID uuid.UUID, quantity int64, source MovementSource, sourceID uuid.UUID) error
}

// MovementRepository reads the movement history for audit views.
type MovementRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockMovement], error)
	FindBySource(ctx context.Context, source MovementSource, sourceID uuid.UUID) ([]StockMovement, error)
}
