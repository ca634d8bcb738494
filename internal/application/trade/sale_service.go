package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/inventory"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/trade"
)

// SaleService handles sale workflow operations
type SaleService struct {
	scope    TransactionScope
	saleRepo trade.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, saleRepo trade.SaleRepository) *SaleService {
	return &SaleService{
		scope:    scope,
		saleRepo: saleRepo,
	}
}

// Create records an active sale and decreases stock for every line in
// the same transaction. An insufficient-stock failure on any line rolls
// back the whole sale, including decrements already applied.
func (s *SaleService) Create(ctx context.Context, userID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	var response SaleResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.Clients().FindByID(ctx, req.ClientID)
		if err != nil {
			return err
		}
		if !client.IsActive {
			return shared.NewDomainError("INACTIVE_REFERENCE",
				fmt.Sprintf("Client %s is inactive", client.ID))
		}

		lines, err := buildLines(ctx, repos, req.Lines)
		if err != nil {
			return err
		}

		sale, err := trade.NewSale(req.ClientID, userID, req.SaleDate, req.Notes, toSaleLines(lines))
		if err != nil {
			return err
		}

		for _, detail := range sale.Details {
			if err := repos.Ledger().Decrease(ctx, detail.ProductID, detail.Quantity, inventory.SourceSale, sale.ID); err != nil {
				return err
			}
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Cancel voids an active sale and restores the stock it consumed. A
// second cancel of the same sale fails with InvalidState.
func (s *SaleService) Cancel(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	var response SaleResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := sale.Cancel(); err != nil {
			return err
		}

		for _, detail := range sale.Details {
			if err := repos.Ledger().Increase(ctx, detail.ProductID, detail.Quantity, inventory.SourceSaleCancellation, sale.ID); err != nil {
				return err
			}
		}

		if err := repos.Sales().UpdateStatus(ctx, id, trade.SaleActive, trade.SaleCancelled); err != nil {
			return err
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a sale with its lines
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) (*shared.Paginated[SaleResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		if !trade.SaleStatus(filter.Status).IsValid() {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Unknown sale status %q", filter.Status))
		}
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		// date_to is inclusive of the whole day
		domainFilter.Filters["date_to"] = filter.DateTo.AddDate(0, 0, 1)
	}

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, ToSaleResponse(&sales[i]))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}
