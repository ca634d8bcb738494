package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=1000"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Stock       int64           `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// ProductResponse represents a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int64           `json:"stock"`
	IsActive    bool            `json:"is_active"`
	IsLowStock  bool            `json:"is_low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListFilter filters the product listing
type ProductListFilter struct {
	Page     int              `form:"page"`
	PageSize int              `form:"page_size"`
	Search   string           `form:"search"`
	Active   *bool            `form:"active"`
	InStock  *bool            `form:"in_stock"`
	LowStock *bool            `form:"low_stock"`
	PriceMin *decimal.Decimal `form:"price_min"`
	PriceMax *decimal.Decimal `form:"price_max"`
}

// ToProductResponse converts a product aggregate to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		IsLowStock:  p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
