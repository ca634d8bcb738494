package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/inventory"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/backoffice/backend/internal/domain/trade"
)

// PurchaseService handles purchase workflow operations
type PurchaseService struct {
	scope        TransactionScope
	purchaseRepo trade.PurchaseRepository
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope TransactionScope, purchaseRepo trade.PurchaseRepository) *PurchaseService {
	return &PurchaseService{
		scope:        scope,
		purchaseRepo: purchaseRepo,
	}
}

// Create records a pending purchase. Stock is not touched until the
// purchase is completed.
func (s *PurchaseService) Create(ctx context.Context, userID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	var response PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		supplier, err := repos.Suppliers().FindByID(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.IsActive {
			return shared.NewDomainError("INACTIVE_REFERENCE",
				fmt.Sprintf("Supplier %s is inactive", supplier.ID))
		}

		lines, err := buildLines(ctx, repos, req.Lines)
		if err != nil {
			return err
		}

		purchase, err := trade.NewPurchase(req.SupplierID, userID, req.PurchaseDate, req.Notes, toPurchaseLines(lines))
		if err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Update replaces the line set of a pending purchase and recomputes its
// total. Completed and cancelled purchases reject the update.
func (s *PurchaseService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	var response PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}

		lines, err := buildLines(ctx, repos, req.Lines)
		if err != nil {
			return err
		}
		if err := purchase.ReplaceDetails(toPurchaseLines(lines)); err != nil {
			return err
		}
		if req.Notes != nil {
			purchase.Notes = *req.Notes
		}
		if req.PurchaseDate != nil {
			if err := purchase.SetOrderedAt(*req.PurchaseDate); err != nil {
				return err
			}
		}

		if err := repos.Purchases().ReplaceDetails(ctx, purchase); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Complete marks the purchase as received and increases stock for every
// line. The status flip and all stock increases commit atomically.
func (s *PurchaseService) Complete(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	var response PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := purchase.Complete(); err != nil {
			return err
		}

		for _, detail := range purchase.Details {
			if err := repos.Ledger().Increase(ctx, detail.ProductID, detail.Quantity, inventory.SourcePurchase, purchase.ID); err != nil {
				return err
			}
		}

		if err := repos.Purchases().UpdateStatus(ctx, id, trade.PurchasePending, trade.PurchaseCompleted); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Cancel abandons a pending purchase. No stock has moved, so there is
// nothing to restore.
func (s *PurchaseService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	var response PurchaseResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := purchase.Cancel(); err != nil {
			return err
		}

		if err := repos.Purchases().UpdateStatus(ctx, id, trade.PurchasePending, trade.PurchaseCancelled); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a pending purchase and its lines.
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !purchase.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Only pending purchases can be deleted")
		}
		return repos.Purchases().Delete(ctx, id)
	})
}

// GetByID retrieves a purchase with its lines
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter PurchaseListFilter) (*shared.Paginated[PurchaseResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		if !trade.PurchaseStatus(filter.Status).IsValid() {
			return nil, shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Unknown purchase status %q", filter.Status))
		}
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		// date_to is inclusive of the whole day
		domainFilter.Filters["date_to"] = filter.DateTo.AddDate(0, 0, 1)
	}

	purchases, err := s.purchaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchaseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, ToPurchaseResponse(&purchases[i]))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// resolvedLine pairs a request line with its validated product.
type resolvedLine struct {
	productID uuid.UUID
	quantity  int64
	unitPrice valueobject.Money
}

// buildLines validates that every referenced product exists and is
// active, and converts request lines to domain inputs.
func buildLines(ctx context.Context, repos TransactionalRepositories, inputs []LineInput) ([]resolvedLine, error) {
	lines := make([]resolvedLine, 0, len(inputs))
	for _, input := range inputs {
		product, err := repos.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("INACTIVE_REFERENCE",
				fmt.Sprintf("Product %s is inactive", product.ID))
		}
		price, err := valueobject.NewMoney(input.UnitPrice, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		lines = append(lines, resolvedLine{
			productID: input.ProductID,
			quantity:  input.Quantity,
			unitPrice: price,
		})
	}
	return lines, nil
}

func toPurchaseLines(lines []resolvedLine) []trade.PurchaseLine {
	out := make([]trade.PurchaseLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, trade.PurchaseLine{ProductID: l.productID, Quantity: l.quantity, UnitPrice: l.unitPrice})
	}
	return out
}

func toSaleLines(lines []resolvedLine) []trade.SaleLine {
	out := make([]trade.SaleLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, trade.SaleLine{ProductID: l.productID, Quantity: l.quantity, UnitPrice: l.unitPrice})
	}
	return out
}
