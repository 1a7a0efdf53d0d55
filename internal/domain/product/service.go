package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Bjornanger/webshop/internal/domain/pricing"
)

// CreatedNotifier receives a notification after a product has been committed.
// Implementations must not fail the request path; fan-out errors stay on
// their side of the boundary.
type CreatedNotifier interface {
	ProductCreated(ctx context.Context, p Product)
}

// CatalogService exposes the product read and write paths. Read paths return
// priced views: the effective price is derived from the active discount
// strategy at call time and never written back to storage.
type CatalogService struct {
	repo     Repository
	pricer   *pricing.Pricer
	notifier CreatedNotifier
}

// NewCatalogService creates a CatalogService. notifier may be nil when no
// notification sinks are configured.
func NewCatalogService(repo Repository, pricer *pricing.Pricer, notifier CreatedNotifier) *CatalogService {
	return &CatalogService{repo: repo, pricer: pricer, notifier: notifier}
}

// Get returns the product with the discount for the current instant applied.
func (s *CatalogService) Get(ctx context.Context, id int64) (*PricedProduct, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	priced := s.price(s.pricer.Now(), *p)
	return &priced, nil
}

// ListAll returns every product with discounts applied. An empty catalog is
// reported as ErrNotFound, not as an empty list.
func (s *CatalogService) ListAll(ctx context.Context) ([]PricedProduct, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	if len(products) == 0 {
		return nil, ErrNotFound
	}

	now := s.pricer.Now()
	out := make([]PricedProduct, len(products))
	for i, p := range products {
		out[i] = s.price(now, p)
	}
	return out, nil
}

// Create persists a new product and notifies registered sinks after the
// commit succeeded.
func (s *CatalogService) Create(ctx context.Context, p *Product) error {
	if err := s.repo.Create(ctx, p); err != nil {
		return errors.Wrap(err, "create product")
	}

	if s.notifier != nil {
		s.notifier.ProductCreated(ctx, *p)
	}
	return nil
}

// Update replaces name, list price, and stock of an existing product.
func (s *CatalogService) Update(ctx context.Context, id int64, name string, price decimal.Decimal, stock int) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = name
	p.Price = price
	p.Stock = stock

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, errors.Wrapf(err, "update product %d", id)
	}
	return p, nil
}

// Delete removes a product by id, reporting ErrNotFound for unknown ids.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *CatalogService) price(now time.Time, p Product) PricedProduct {
	strategy := s.pricer.ActiveStrategy(now)
	return PricedProduct{
		Product:        p,
		EffectivePrice: strategy.EffectivePrice(p.Price),
		Promotion:      strategy.Name(),
	}
}
