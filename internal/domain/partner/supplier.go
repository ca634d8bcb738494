package partner

import (
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Supplier represents a goods supplier referenced by purchases
type Supplier struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Email    string `gorm:"type:varchar(200);index"`
	Phone    string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:text"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new active supplier
func NewSupplier(name, email, phone, address string) (*Supplier, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Address:           address,
		IsActive:          true,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, email, phone, address string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	s.Name = name
	s.Email = email
	s.Phone = phone
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ToggleActive flips the active flag
func (s *Supplier) ToggleActive() {
	s.IsActive = !s.IsActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}
