package service

import (
	"context"
	"time"

	"quotedesk/internal/catalog/repository"
	"quotedesk/internal/catalog/transport"
	"quotedesk/internal/events"

	"github.com/google/uuid"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo repository.Repository
	bus  events.Bus
}

// New creates a new catalog service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus (set after construction by the composition root).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Create persists a new product owned by the requester.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req transport.CreateProductRequest) (*transport.ProductResponse, error) {
	product := &repository.Product{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           req.Name,
		Description:    req.Description,
		SellPriceCents: req.SellPriceCents,
		BuyPriceCents:  req.BuyPriceCents,
		UnitOfMeasure:  req.UnitOfMeasure,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publishChange(ctx, product.ID, ownerID, "created")
	return toResponse(product), nil
}

// GetByID returns a product owned by the requester.
func (s *Service) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*transport.ProductResponse, error) {
	product, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return toResponse(product), nil
}

// List returns all of the requester's products.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) (*transport.ProductListResponse, error) {
	products, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]transport.ProductResponse, len(products))
	for i := range products {
		items[i] = *toResponse(&products[i])
	}
	return &transport.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update replaces a product's fields. Missing and foreign products fail identically.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, req transport.UpdateProductRequest) (*transport.ProductResponse, error) {
	err := s.repo.Update(ctx, repository.UpdateProductParams{
		ID:             id,
		OwnerID:        ownerID,
		Name:           req.Name,
		Description:    req.Description,
		SellPriceCents: req.SellPriceCents,
		BuyPriceCents:  req.BuyPriceCents,
		UnitOfMeasure:  req.UnitOfMeasure,
	})
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, id, ownerID, "updated")
	return s.GetByID(ctx, id, ownerID)
}

// Delete removes a product owned by the requester.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.publishChange(ctx, id, ownerID, "deleted")
	return nil
}

func (s *Service) publishChange(ctx context.Context, productID, ownerID uuid.UUID, change string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ProductChanged{
		BaseEvent: events.NewBaseEvent(),
		ProductID: productID,
		OwnerID:   ownerID,
		Change:    change,
	})
}

func toResponse(p *repository.Product) *transport.ProductResponse {
	return &transport.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		SellPriceCents: p.SellPriceCents,
		BuyPriceCents:  p.BuyPriceCents,
		UnitOfMeasure:  p.UnitOfMeasure,
		CreatedAt:      p.CreatedAt,
	}
}
