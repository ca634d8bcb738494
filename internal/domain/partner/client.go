package partner

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Client represents a customer referenced by sales
type Client struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Email    string `gorm:"type:varchar(200);index"`
	Phone    string `gorm:"type:varchar(50)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new active client
func NewClient(name, email, phone string) (*Client, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		IsActive:          true,
	}, nil
}

// Update updates the client's contact information
func (c *Client) Update(name, email, phone string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// ToggleActive flips the active flag
func (c *Client) ToggleActive() {
	c.IsActive = !c.IsActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
