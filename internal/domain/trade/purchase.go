package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
)

// PurchaseStatus is the lifecycle state of a purchase.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchasePending, PurchaseCompleted, PurchaseCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to target.
// Completed and cancelled are terminal.
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	if s != PurchasePending {
		return false
	}
	return target == PurchaseCompleted || target == PurchaseCancelled
}

func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseCompleted || s == PurchaseCancelled
}

// PurchaseDetail is one product line of a purchase. UnitPrice is captured
// at line creation and does not follow later product price changes.
type PurchaseDetail struct {
	shared.BaseEntity
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

func (PurchaseDetail) TableName() string {
	return "purchase_details"
}

func newPurchaseDetail(purchaseID, productID uuid.UUID, quantity int64, unitPrice valueobject.Money) (*PurchaseDetail, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	price := unitPrice.Round()
	return &PurchaseDetail{
		BaseEntity: shared.NewBaseEntity(),
		PurchaseID: purchaseID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  price.Amount(),
		Subtotal:   price.MulInt(quantity).Amount(),
	}, nil
}

// Purchase is an order placed with a supplier. Stock only moves when the
// purchase is completed; a pending purchase reserves nothing.
type Purchase struct {
	shared.BaseAggregateRoot
	SupplierID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"supplier_id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null" json:"user_id"`
	Status      PurchaseStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Total       decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"total"`
	Notes       string           `gorm:"type:text" json:"notes"`
	OrderedAt   time.Time        `gorm:"not null" json:"ordered_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Details     []PurchaseDetail `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"details"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseLine is the input for one purchase detail.
type PurchaseLine struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice valueobject.Money
}

// NewPurchase creates a pending purchase dated orderedAt, with at least
// one line. Backdating is allowed, future dates are not. Lines
// referencing the same product are rejected.
func NewPurchase(supplierID, userID uuid.UUID, orderedAt time.Time, notes string, lines []PurchaseLine) (*Purchase, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "Purchase requires at least one line")
	}
	if err := validateDocumentDate(orderedAt); err != nil {
		return nil, err
	}

	purchase := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		UserID:            userID,
		Status:            PurchasePending,
		Total:             decimal.Zero,
		Notes:             notes,
		OrderedAt:         orderedAt,
	}

	for _, line := range lines {
		if err := purchase.AddDetail(line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}
	return purchase, nil
}

// AddDetail appends a line to a pending purchase.
func (p *Purchase) AddDetail(productID uuid.UUID, quantity int64, unitPrice valueobject.Money) error {
	if p.Status != PurchasePending {
		return shared.NewDomainError("INVALID_STATE", "Only pending purchases can be modified")
	}
	for _, d := range p.Details {
		if d.ProductID == productID {
			return shared.NewDomainError("DUPLICATE_LINE",
				fmt.Sprintf("Product %s appears more than once in the line set", productID))
		}
	}

	detail, err := newPurchaseDetail(p.ID, productID, quantity, unitPrice)
	if err != nil {
		return err
	}
	p.Details = append(p.Details, *detail)
	p.recalculateTotal()
	return nil
}

// ReplaceDetails swaps the full line set of a pending purchase.
func (p *Purchase) ReplaceDetails(lines []PurchaseLine) error {
	if p.Status != PurchasePending {
		return shared.NewDomainError("INVALID_STATE", "Only pending purchases can be modified")
	}
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_PURCHASE", "Purchase requires at least one line")
	}

	previous := p.Details
	p.Details = nil
	for _, line := range lines {
		if err := p.AddDetail(line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			p.Details = previous
			p.recalculateTotal()
			return err
		}
	}
	p.IncrementVersion()
	return nil
}

// SetOrderedAt moves the document date of a pending purchase. The same
// backdating rule as creation applies.
func (p *Purchase) SetOrderedAt(orderedAt time.Time) error {
	if p.Status != PurchasePending {
		return shared.NewDomainError("INVALID_STATE", "Only pending purchases can be modified")
	}
	if err := validateDocumentDate(orderedAt); err != nil {
		return err
	}
	p.OrderedAt = orderedAt
	return nil
}

// Complete marks the purchase as received. The caller is responsible for
// increasing stock for every line in the same transaction.
func (p *Purchase) Complete() error {
	if !p.Status.CanTransitionTo(PurchaseCompleted) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot complete purchase in status %s", p.Status))
	}
	now := time.Now()
	p.Status = PurchaseCompleted
	p.CompletedAt = &now
	p.IncrementVersion()
	return nil
}

// Cancel abandons a pending purchase. No stock has moved, so nothing
// needs to be restored.
func (p *Purchase) Cancel() error {
	if !p.Status.CanTransitionTo(PurchaseCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel purchase in status %s", p.Status))
	}
	p.Status = PurchaseCancelled
	p.IncrementVersion()
	return nil
}

func (p *Purchase) IsPending() bool {
	return p.Status == PurchasePending
}

func (p *Purchase) TotalMoney() valueobject.Money {
	money, _ := valueobject.NewMoney(p.Total, valueobject.DefaultCurrency)
	return money
}

func (p *Purchase) recalculateTotal() {
	total := decimal.Zero
	for _, d := range p.Details {
		total = total.Add(d.Subtotal)
	}
	p.Total = total
}
