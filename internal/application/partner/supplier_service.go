package partner

import (
	"context"

	"github.com/google/uuid"

	apptrade "github.com/backoffice/backend/internal/application/trade"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/shared"
)

// SupplierService handles supplier operations
type SupplierService struct {
	scope        apptrade.TransactionScope
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(scope apptrade.TransactionScope, supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{
		scope:        scope,
		supplierRepo: supplierRepo,
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update changes a supplier's contact information
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email, phone, address := supplier.Name, supplier.Email, supplier.Phone, supplier.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := supplier.Update(name, email, phone, address); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// ToggleActive flips the supplier's active flag
func (s *SupplierService) ToggleActive(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.ToggleActive()
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier that no purchase references
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		if _, err := repos.Suppliers().FindByID(ctx, id); err != nil {
			return err
		}

		referenced, err := repos.Purchases().ExistsForSupplier(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return shared.NewDomainError("HAS_REFERENCES",
				"Supplier is referenced by existing purchases")
		}

		return repos.Suppliers().Delete(ctx, id)
	})
}

// GetByID retrieves a supplier
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[SupplierResponse], error) {
	domainFilter := toDomainFilter(filter)

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		items = append(items, ToSupplierResponse(&suppliers[i]))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}
	return domainFilter
}
