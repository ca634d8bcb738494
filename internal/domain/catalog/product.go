package catalog

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the on-hand quantity below which a product is
// considered low on stock.
const LowStockThreshold = 10

// Product represents a sellable/purchasable item in the catalog.
// It is the aggregate root for product operations and the owner of the
// on-hand stock quantity mutated by the stock ledger.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_products_name"`
	Description string          `gorm:"type:text"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock       int64           `gorm:"not null;default:0;check:stock >= 0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product with zero stock
func NewProduct(name, description string, unitPrice valueobject.Money) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		UnitPrice:         unitPrice.Round().Amount(),
		Stock:             0,
		IsActive:          true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetUnitPrice updates the selling price
func (p *Product) SetUnitPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.UnitPrice = price.Round().Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IncreaseStock adds quantity to the on-hand stock
func (p *Product) IncreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.Stock += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DecreaseStock subtracts quantity from the on-hand stock.
// The stock never goes negative: the whole decrement is refused when the
// on-hand quantity is insufficient.
func (p *Product) DecreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.ErrInsufficientStock
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasStock returns true if at least quantity units are on hand
func (p *Product) HasStock(quantity int64) bool {
	return p.Stock >= quantity
}

// IsLowStock returns true if the on-hand quantity is below the threshold
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// IsOutOfStock returns true if nothing is on hand
func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}

// InventoryValue returns stock quantity times unit price
func (p *Product) InventoryValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(p.Stock))
}

// GetUnitPriceMoney returns the unit price as Money value object
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product; stock is kept as-is
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ToggleActive flips the active flag
func (p *Product) ToggleActive() {
	p.IsActive = !p.IsActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
