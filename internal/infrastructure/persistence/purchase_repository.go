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

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by ID, including its detail lines
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Purchase{}), filter)

	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("Details").
		Order(filter.OrderBy + " " + filter.OrderDir).
		Offset(offset).
		Limit(filter.PageSize).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Purchase{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase together with its detail lines
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

// UpdateStatus transitions the purchase with a guarded conditional update.
// The status column is only touched while it still holds the expected
// value, so concurrent transitions of the same purchase cannot both win.
func (r *GormPurchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, target trade.PurchaseStatus) error {
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": time.Now(),
	}
	if target == trade.PurchaseCompleted {
		updates["completed_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&trade.Purchase{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInvalidState
	}
	return nil
}

// ReplaceDetails swaps the persisted line set for the one held by the
// aggregate and refreshes the purchase row
func (r *GormPurchaseRepository) ReplaceDetails(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", purchase.ID).Delete(&trade.PurchaseDetail{}).Error; err != nil {
			return err
		}
		if len(purchase.Details) > 0 {
			if err := tx.Create(&purchase.Details).Error; err != nil {
				return err
			}
		}
		return tx.Model(&trade.Purchase{}).
			Where("id = ?", purchase.ID).
			Updates(map[string]interface{}{
				"total":      purchase.Total,
				"notes":      purchase.Notes,
				"ordered_at": purchase.OrderedAt,
				"updated_at": time.Now(),
			}).Error
	})
}

// Delete deletes a purchase; detail lines go with it via the cascade
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Purchase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForProduct checks whether any purchase references the product
func (r *GormPurchaseRepository) ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.PurchaseDetail{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsForSupplier checks whether any purchase references the supplier
func (r *GormPurchaseRepository) ExistsForSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if from, ok := filter.Filters["date_from"]; ok {
		query = query.Where("ordered_at >= ?", from)
	}
	if to, ok := filter.Filters["date_to"]; ok {
		query = query.Where("ordered_at < ?", to)
	}
	return query
}
