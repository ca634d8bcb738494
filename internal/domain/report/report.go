package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyTotal is one bucket of a month-by-month series.
type MonthlyTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// TopProduct is one row of a products-by-quantity ranking.
type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseStats summarizes purchasing activity.
type PurchaseStats struct {
	TotalCount     int64           `json:"total_count"`
	PendingCount   int64           `json:"pending_count"`
	CompletedCount int64           `json:"completed_count"`
	CancelledCount int64           `json:"cancelled_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AverageAmount  decimal.Decimal `json:"average_amount"`
	MonthCount     int64           `json:"month_count"`
	MonthAmount    decimal.Decimal `json:"month_amount"`
	Monthly        []MonthlyTotal  `json:"monthly"`
	TopProducts    []TopProduct    `json:"top_products"`
}

// SalesStats summarizes sales activity. Cancelled sales are excluded
// from amount figures but reported in CancelledCount.
type SalesStats struct {
	TotalCount     int64           `json:"total_count"`
	ActiveCount    int64           `json:"active_count"`
	CancelledCount int64           `json:"cancelled_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AverageAmount  decimal.Decimal `json:"average_amount"`
	TodayCount     int64           `json:"today_count"`
	TodayAmount    decimal.Decimal `json:"today_amount"`
	MonthCount     int64           `json:"month_count"`
	MonthAmount    decimal.Decimal `json:"month_amount"`
	Monthly        []MonthlyTotal  `json:"monthly"`
	TopProducts    []TopProduct    `json:"top_products"`
}

// LowStockProduct is one row of the low stock listing.
type LowStockProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Stock     int64     `json:"stock"`
}

// InventoryStats summarizes the current stock position.
type InventoryStats struct {
	ProductCount    int64             `json:"product_count"`
	ActiveCount     int64             `json:"active_count"`
	LowStockCount   int64             `json:"low_stock_count"`
	OutOfStockCount int64             `json:"out_of_stock_count"`
	InventoryValue  decimal.Decimal   `json:"inventory_value"`
	LowStock        []LowStockProduct `json:"low_stock"`
}

// DateRange bounds a reporting query. Zero values mean unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Repository answers reporting queries with database-side aggregation.
type Repository interface {
	PurchaseStats(ctx context.Context, months, topN int) (*PurchaseStats, error)
	SalesStats(ctx context.Context, months, topN int) (*SalesStats, error)
	InventoryStats(ctx context.Context, lowStockLimit int) (*InventoryStats, error)
	SalesInRange(ctx context.Context, r DateRange) ([]MonthlyTotal, error)
	PurchasesInRange(ctx context.Context, r DateRange) ([]MonthlyTotal, error)
}
