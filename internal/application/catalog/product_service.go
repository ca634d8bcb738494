package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apptrade "github.com/backoffice/backend/internal/application/trade"
	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/inventory"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
)

// ProductService handles product catalog operations
type ProductService struct {
	scope       apptrade.TransactionScope
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(scope apptrade.TransactionScope, productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		scope:       scope,
		productRepo: productRepo,
	}
}

// Create registers a new product. A non-zero initial stock is recorded
// through the ledger as an adjustment so the movement history starts at
// the real opening quantity.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var response ProductResponse

	err := s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		exists, err := repos.Products().ExistsByName(ctx, req.Name)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("Product %q already exists", req.Name))
		}

		price, err := valueobject.NewMoney(req.UnitPrice, valueobject.DefaultCurrency)
		if err != nil {
			return err
		}
		product, err := catalog.NewProduct(req.Name, req.Description, price)
		if err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		if req.Stock > 0 {
			if err := repos.Ledger().Increase(ctx, product.ID, req.Stock, inventory.SourceAdjustment, product.ID); err != nil {
				return err
			}
			product.Stock = req.Stock
		}

		response = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Update changes name, description or price of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != product.Name {
		exists, err := s.productRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("Product %q already exists", *req.Name))
		}
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.UnitPrice != nil {
		price, err := valueobject.NewMoney(*req.UnitPrice, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := product.SetUnitPrice(price); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.UpdateInfo(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ToggleActive flips the product's active flag
func (s *ProductService) ToggleActive(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ToggleActive()
	if err := s.productRepo.UpdateInfo(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product that no purchase or sale references
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		if _, err := repos.Products().FindByID(ctx, id); err != nil {
			return err
		}

		inPurchases, err := repos.Purchases().ExistsForProduct(ctx, id)
		if err != nil {
			return err
		}
		inSales, err := repos.Sales().ExistsForProduct(ctx, id)
		if err != nil {
			return err
		}
		if inPurchases || inSales {
			return shared.NewDomainError("HAS_REFERENCES",
				"Product is referenced by existing purchases or sales")
		}

		return repos.Products().Delete(ctx, id)
	})
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
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
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}
	if filter.LowStock != nil {
		domainFilter.Filters["low_stock"] = *filter.LowStock
	}
	if filter.PriceMin != nil {
		domainFilter.Filters["price_min"] = *filter.PriceMin
	}
	if filter.PriceMax != nil {
		domainFilter.Filters["price_max"] = *filter.PriceMax
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}
