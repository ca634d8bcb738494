package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// PurchaseRepository defines persistence operations for purchases.
// FindByID loads the purchase with its details.
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	// UpdateStatus transitions the purchase only if it is still in
	// expected status, returning shared.ErrInvalidState otherwise.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, target PurchaseStatus) error
	// ReplaceDetails persists a new line set, removing the old one.
	ReplaceDetails(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error)
	ExistsForSupplier(ctx context.Context, supplierID uuid.UUID) (bool, error)
}

// SaleRepository defines persistence operations for sales.
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	// UpdateStatus transitions the sale only if it is still in expected
	// status, returning shared.ErrInvalidState otherwise.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, target SaleStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error)
	ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error)
}
