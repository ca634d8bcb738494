package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleActive    SaleStatus = "active"
	SaleCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) IsValid() bool {
	return s == SaleActive || s == SaleCancelled
}

// SaleDetail is one product line of a sale. UnitPrice is captured at
// sale creation and does not follow later product price changes.
type SaleDetail struct {
	shared.BaseEntity
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

func (SaleDetail) TableName() string {
	return "sale_details"
}

func newSaleDetail(saleID, productID uuid.UUID, quantity int64, unitPrice valueobject.Money) (*SaleDetail, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	price := unitPrice.Round()
	return &SaleDetail{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  price.Amount(),
		Subtotal:   price.MulInt(quantity).Amount(),
	}, nil
}

// Sale is a customer order. Stock is decreased at creation time, so an
// active sale already owns its units; cancelling gives them back.
type Sale struct {
	shared.BaseAggregateRoot
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null" json:"user_id"`
	Status      SaleStatus      `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	Notes       string          `gorm:"type:text" json:"notes"`
	SoldAt      time.Time       `gorm:"not null" json:"sold_at"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	Details     []SaleDetail    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"details"`
}

func (Sale) TableName() string {
	return "sales"
}

// SaleLine is the input for one sale detail.
type SaleLine struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice valueobject.Money
}

// NewSale creates an active sale dated soldAt, with at least one line.
// Backdating is allowed, future dates are not. Lines referencing the
// same product are rejected.
func NewSale(clientID, userID uuid.UUID, soldAt time.Time, notes string, lines []SaleLine) (*Sale, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "Sale requires at least one line")
	}
	if err := validateDocumentDate(soldAt); err != nil {
		return nil, err
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		UserID:            userID,
		Status:            SaleActive,
		Total:             decimal.Zero,
		Notes:             notes,
		SoldAt:            soldAt,
	}

	for _, line := range lines {
		if err := sale.addDetail(line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}
	return sale, nil
}

// addDetail appends a line during construction. Sales are immutable once
// created, so unlike Purchase this never runs on a persisted aggregate.
func (s *Sale) addDetail(productID uuid.UUID, quantity int64, unitPrice valueobject.Money) error {
	for _, d := range s.Details {
		if d.ProductID == productID {
			return shared.NewDomainError("DUPLICATE_LINE",
				fmt.Sprintf("Product %s appears more than once in the line set", productID))
		}
	}

	detail, err := newSaleDetail(s.ID, productID, quantity, unitPrice)
	if err != nil {
		return err
	}
	s.Details = append(s.Details, *detail)
	s.recalculateTotal()
	return nil
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, d := range s.Details {
		total = total.Add(d.Subtotal)
	}
	s.Total = total
}

// Cancel marks the sale as cancelled. The caller is responsible for
// restoring stock for every line in the same transaction. A sale can
// only ever be cancelled once.
func (s *Sale) Cancel() error {
	if s.Status != SaleActive {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel sale in status %s", s.Status))
	}
	now := time.Now()
	s.Status = SaleCancelled
	s.CancelledAt = &now
	s.IncrementVersion()
	return nil
}

func (s *Sale) IsActive() bool {
	return s.Status == SaleActive
}

func (s *Sale) TotalMoney() valueobject.Money {
	money, _ := valueobject.NewMoney(s.Total, valueobject.DefaultCurrency)
	return money
}
