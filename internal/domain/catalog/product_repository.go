package catalog

import (
	"context"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDForUpdate loads the product with a row-level lock so that
	// concurrent stock mutations on the same product serialize. Must be
	// called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, product *Product) error
	// UpdateInfo persists the descriptive columns of a product without
	// touching stock, which only the ledger may change.
	UpdateInfo(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
