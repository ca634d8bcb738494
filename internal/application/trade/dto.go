package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/trade"
)

// ==================== Purchase DTOs ====================

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID   `json:"supplier_id" binding:"required"`
	PurchaseDate time.Time   `json:"purchase_date" binding:"required"`
	Notes        string      `json:"notes" binding:"max=1000"`
	Lines        []LineInput `json:"lines" binding:"required,min=1,dive"`
}

// LineInput represents one product line in a purchase or sale request
type LineInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdatePurchaseRequest replaces the full line set of a pending purchase
type UpdatePurchaseRequest struct {
	PurchaseDate *time.Time  `json:"purchase_date"`
	Notes        *string     `json:"notes" binding:"omitempty,max=1000"`
	Lines        []LineInput `json:"lines" binding:"required,min=1,dive"`
}

// PurchaseDetailResponse represents one purchase line
type PurchaseDetailResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse represents a purchase with its lines
type PurchaseResponse struct {
	ID          uuid.UUID                `json:"id"`
	SupplierID  uuid.UUID                `json:"supplier_id"`
	UserID      uuid.UUID                `json:"user_id"`
	Status      string                   `json:"status"`
	Total       decimal.Decimal          `json:"total"`
	Notes       string                   `json:"notes,omitempty"`
	OrderedAt   time.Time                `json:"ordered_at"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	Details     []PurchaseDetailResponse `json:"details"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// PurchaseListFilter filters the purchase listing
type PurchaseListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Status     string     `form:"status"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	DateFrom   *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// ToPurchaseResponse converts a purchase aggregate to its response DTO
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	details := make([]PurchaseDetailResponse, 0, len(p.Details))
	for _, d := range p.Details {
		details = append(details, PurchaseDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return PurchaseResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		UserID:      p.UserID,
		Status:      string(p.Status),
		Total:       p.Total,
		Notes:       p.Notes,
		OrderedAt:   p.OrderedAt,
		CompletedAt: p.CompletedAt,
		Details:     details,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ==================== Sale DTOs ====================

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	ClientID uuid.UUID   `json:"client_id" binding:"required"`
	SaleDate time.Time   `json:"sale_date" binding:"required"`
	Notes    string      `json:"notes" binding:"max=1000"`
	Lines    []LineInput `json:"lines" binding:"required,min=1,dive"`
}

// SaleDetailResponse represents one sale line
type SaleDetailResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse represents a sale with its lines
type SaleResponse struct {
	ID          uuid.UUID            `json:"id"`
	ClientID    uuid.UUID            `json:"client_id"`
	UserID      uuid.UUID            `json:"user_id"`
	Status      string               `json:"status"`
	Total       decimal.Decimal      `json:"total"`
	Notes       string               `json:"notes,omitempty"`
	SoldAt      time.Time            `json:"sold_at"`
	CancelledAt *time.Time           `json:"cancelled_at,omitempty"`
	Details     []SaleDetailResponse `json:"details"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// SaleListFilter filters the sale listing
type SaleListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	Status   string     `form:"status"`
	ClientID *uuid.UUID `form:"client_id"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// ToSaleResponse converts a sale aggregate to its response DTO
func ToSaleResponse(s *trade.Sale) SaleResponse {
	details := make([]SaleDetailResponse, 0, len(s.Details))
	for _, d := range s.Details {
		details = append(details, SaleDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return SaleResponse{
		ID:          s.ID,
		ClientID:    s.ClientID,
		UserID:      s.UserID,
		Status:      string(s.Status),
		Total:       s.Total,
		Notes:       s.Notes,
		SoldAt:      s.SoldAt,
		CancelledAt: s.CancelledAt,
		Details:     details,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
