package partner

import (
	"context"

	"github.com/google/uuid"

	apptrade "github.com/backoffice/backend/internal/application/trade"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/shared"
)

// ClientService handles client operations
type ClientService struct {
	scope      apptrade.TransactionScope
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(scope apptrade.TransactionScope, clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{
		scope:      scope,
		clientRepo: clientRepo,
	}
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Update changes a client's contact information
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email, phone := client.Name, client.Email, client.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := client.Update(name, email, phone); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// ToggleActive flips the client's active flag
func (s *ClientService) ToggleActive(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.ToggleActive()
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client that no sale references
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		if _, err := repos.Clients().FindByID(ctx, id); err != nil {
			return err
		}

		referenced, err := repos.Sales().ExistsForClient(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return shared.NewDomainError("HAS_REFERENCES",
				"Client is referenced by existing sales")
		}

		return repos.Clients().Delete(ctx, id)
	})
}

// GetByID retrieves a client
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[ClientResponse], error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, ToClientResponse(&clients[i]))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}
