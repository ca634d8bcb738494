package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/report"
)

// GormReportRepository implements report.Repository with database-side
// aggregation. The queries run against the live tables; callers cache
// the results when that matters.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// PurchaseStats aggregates purchasing activity. Amount figures cover
// completed purchases only; counts cover every status.
func (r *GormReportRepository) PurchaseStats(ctx context.Context, months, topN int) (*report.PurchaseStats, error) {
	stats := &report.PurchaseStats{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                                                          AS total_count,
			COUNT(*) FILTER (WHERE status = 'pending')                        AS pending_count,
			COUNT(*) FILTER (WHERE status = 'completed')                      AS completed_count,
			COUNT(*) FILTER (WHERE status = 'cancelled')                      AS cancelled_count,
			COALESCE(SUM(total) FILTER (WHERE status = 'completed'), 0)       AS total_amount,
			COALESCE(AVG(total) FILTER (WHERE status = 'completed'), 0)       AS average_amount,
			COUNT(*) FILTER (WHERE ordered_at >= date_trunc('month', now()))  AS month_count,
			COALESCE(SUM(total) FILTER (WHERE status = 'completed'
				AND ordered_at >= date_trunc('month', now())), 0)             AS month_amount
		FROM purchases
	`).Scan(stats).Error
	if err != nil {
		return nil, err
	}

	stats.Monthly, err = r.monthlySeries(ctx, "purchases", "ordered_at", "status = 'completed'", months)
	if err != nil {
		return nil, err
	}

	stats.TopProducts, err = r.topProducts(ctx, "purchase_details", "purchases", "purchase_id", "status = 'completed'", topN)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SalesStats aggregates sales activity. Cancelled sales are counted but
// excluded from every amount figure.
func (r *GormReportRepository) SalesStats(ctx context.Context, months, topN int) (*report.SalesStats, error) {
	stats := &report.SalesStats{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                                                       AS total_count,
			COUNT(*) FILTER (WHERE status = 'active')                      AS active_count,
			COUNT(*) FILTER (WHERE status = 'cancelled')                   AS cancelled_count,
			COALESCE(SUM(total) FILTER (WHERE status = 'active'), 0)       AS total_amount,
			COALESCE(AVG(total) FILTER (WHERE status = 'active'), 0)       AS average_amount,
			COUNT(*) FILTER (WHERE status = 'active'
				AND sold_at >= date_trunc('day', now()))                   AS today_count,
			COALESCE(SUM(total) FILTER (WHERE status = 'active'
				AND sold_at >= date_trunc('day', now())), 0)               AS today_amount,
			COUNT(*) FILTER (WHERE status = 'active'
				AND sold_at >= date_trunc('month', now()))                 AS month_count,
			COALESCE(SUM(total) FILTER (WHERE status = 'active'
				AND sold_at >= date_trunc('month', now())), 0)             AS month_amount
		FROM sales
	`).Scan(stats).Error
	if err != nil {
		return nil, err
	}

	stats.Monthly, err = r.monthlySeries(ctx, "sales", "sold_at", "status = 'active'", months)
	if err != nil {
		return nil, err
	}

	stats.TopProducts, err = r.topProducts(ctx, "sale_details", "sales", "sale_id", "status = 'active'", topN)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// InventoryStats summarizes the current stock position
func (r *GormReportRepository) InventoryStats(ctx context.Context, lowStockLimit int) (*report.InventoryStats, error) {
	stats := &report.InventoryStats{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                                            AS product_count,
			COUNT(*) FILTER (WHERE is_active)                   AS active_count,
			COUNT(*) FILTER (WHERE stock < ? AND stock > 0)     AS low_stock_count,
			COUNT(*) FILTER (WHERE stock <= 0)                  AS out_of_stock_count,
			COALESCE(SUM(stock * unit_price), 0)                AS inventory_value
		FROM products
	`, catalog.LowStockThreshold).Scan(stats).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT id AS product_id, name, stock
		FROM products
		WHERE is_active AND stock < ?
		ORDER BY stock ASC, name ASC
		LIMIT ?
	`, catalog.LowStockThreshold, lowStockLimit).Scan(&stats.LowStock).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SalesInRange buckets active sales month by month within the range
func (r *GormReportRepository) SalesInRange(ctx context.Context, dr report.DateRange) ([]report.MonthlyTotal, error) {
	return r.rangeSeries(ctx, "sales", "sold_at", "status = 'active'", dr)
}

// PurchasesInRange buckets completed purchases month by month within the range
func (r *GormReportRepository) PurchasesInRange(ctx context.Context, dr report.DateRange) ([]report.MonthlyTotal, error) {
	return r.rangeSeries(ctx, "purchases", "ordered_at", "status = 'completed'", dr)
}

func (r *GormReportRepository) monthlySeries(ctx context.Context, table, dateCol, statusCond string, months int) ([]report.MonthlyTotal, error) {
	var series []report.MonthlyTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(YEAR FROM `+dateCol+`)::int  AS year,
			EXTRACT(MONTH FROM `+dateCol+`)::int AS month,
			COUNT(*)                             AS count,
			COALESCE(SUM(total), 0)              AS total
		FROM `+table+`
		WHERE `+statusCond+`
			AND `+dateCol+` >= date_trunc('month', now()) - make_interval(months => ?)
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, months-1).Scan(&series).Error
	if err != nil {
		return nil, err
	}
	return series, nil
}

func (r *GormReportRepository) rangeSeries(ctx context.Context, table, dateCol, statusCond string, dr report.DateRange) ([]report.MonthlyTotal, error) {
	query := r.db.WithContext(ctx).
		Table(table).
		Select(`
			EXTRACT(YEAR FROM ` + dateCol + `)::int  AS year,
			EXTRACT(MONTH FROM ` + dateCol + `)::int AS month,
			COUNT(*)                             AS count,
			COALESCE(SUM(total), 0)              AS total`).
		Where(statusCond).
		Group("1, 2").
		Order("1, 2")
	if !dr.From.IsZero() {
		query = query.Where(dateCol+" >= ?", dr.From)
	}
	if !dr.To.IsZero() {
		query = query.Where(dateCol+" < ?", dr.To.Add(24*time.Hour))
	}

	var series []report.MonthlyTotal
	if err := query.Scan(&series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

func (r *GormReportRepository) topProducts(ctx context.Context, detailTable, headerTable, fkCol, statusCond string, topN int) ([]report.TopProduct, error) {
	var top []report.TopProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.product_id,
			p.name                       AS product_name,
			SUM(d.quantity)              AS quantity,
			COALESCE(SUM(d.subtotal), 0) AS total
		FROM `+detailTable+` d
		JOIN `+headerTable+` h ON h.id = d.`+fkCol+`
		JOIN products p ON p.id = d.product_id
		WHERE h.`+statusCond+`
		GROUP BY d.product_id, p.name
		ORDER BY quantity DESC
		LIMIT ?
	`, topN).Scan(&top).Error
	if err != nil {
		return nil, err
	}
	return top, nil
}
