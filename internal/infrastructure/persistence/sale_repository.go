package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/trade"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by ID, including its detail lines
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&sale, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Sale{}), filter)

	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("Details").
		Order(filter.OrderBy + " " + filter.OrderDir).
		Offset(offset).
		Limit(filter.PageSize).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Sale{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sale together with its detail lines
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// UpdateStatus transitions the sale with a guarded conditional update.
// The status column is only touched while it still holds the expected
// value, so concurrent cancellations of the same sale cannot both win.
func (r *GormSaleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, target trade.SaleStatus) error {
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": time.Now(),
	}
	if target == trade.SaleCancelled {
		updates["cancelled_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).
		Model(&trade.Sale{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&trade.Sale{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInvalidState
	}
	return nil
}

// Delete deletes a sale; detail lines go with it via the cascade
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForProduct checks whether any sale references the product
func (r *GormSaleRepository) ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.SaleDetail{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsForClient checks whether any sale references the client
func (r *GormSaleRepository) ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.Sale{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if clientID, ok := filter.Filters["client_id"]; ok {
		query = query.Where("client_id = ?", clientID)
	}
	if from, ok := filter.Filters["date_from"]; ok {
		query = query.Where("sold_at >= ?", from)
	}
	if to, ok := filter.Filters["date_to"]; ok {
		query = query.Where("sold_at < ?", to)
	}
	return query
}
