package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Bjornanger/webshop/internal/domain/customer"
	"github.com/Bjornanger/webshop/internal/domain/pricing"
	"github.com/Bjornanger/webshop/internal/domain/product"
)

// LineRequest is one requested position: a product reference and a quantity.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// PlaceRequest holds the input for assembling an order. Only ids are trusted;
// customer and product state is resolved from the store.
type PlaceRequest struct {
	CustomerID int64
	Lines      []LineRequest
}

// AssemblyService builds persisted order aggregates: it resolves the customer
// and every referenced product against live store state, prices each line
// with the discount active at assembly time, and commits the result in a
// single repository call. Any resolution failure aborts before any write.
type AssemblyService struct {
	customers customer.Repository
	products  product.Repository
	pricer    *pricing.Pricer
	orders    Repository
}

// NewAssemblyService creates an AssemblyService with the required domain
// dependencies.
func NewAssemblyService(
	customers customer.Repository,
	products product.Repository,
	pricer *pricing.Pricer,
	orders Repository,
) *AssemblyService {
	return &AssemblyService{
		customers: customers,
		products:  products,
		pricer:    pricer,
		orders:    orders,
	}
}

// Place validates and assembles a new order. Lines are resolved and priced in
// input order; the first missing product fails the whole operation with
// nothing persisted. The returned aggregate carries frozen per-line unit
// prices and derived quantity and total.
func (s *AssemblyService) Place(ctx context.Context, req PlaceRequest) (*Order, error) {
	lines, err := s.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	o := newAggregate(req.CustomerID, lines)
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// Replace re-assembles an existing order from the request, whole-aggregate:
// the previous lines are discarded and every line is re-resolved and
// re-priced at the current instant.
func (s *AssemblyService) Replace(ctx context.Context, id int64, req PlaceRequest) (*Order, error) {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return nil, err
	}

	lines, err := s.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	o := newAggregate(req.CustomerID, lines)
	o.ID = id
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrapf(err, "update order %d", id)
	}
	return o, nil
}

// assemble runs the shared resolution pipeline: quantities, customer, then
// each product in input order, pricing as it goes. It performs no writes.
func (s *AssemblyService) assemble(ctx context.Context, req PlaceRequest) ([]Line, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyLines
	}
	for _, l := range req.Lines {
		if l.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: l.ProductID}
		}
	}

	// Customer first: a missing customer must short-circuit before any
	// product lookup happens.
	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: req.CustomerID}
		}
		return nil, errors.Wrapf(err, "get customer %d", req.CustomerID)
	}

	// One instant per request; every line is priced against the same clock
	// reading.
	now := s.pricer.Now()

	lines := make([]Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		p, err := s.products.GetByID(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return nil, &ProductNotFoundError{ProductID: l.ProductID}
			}
			return nil, errors.Wrapf(err, "get product %d", l.ProductID)
		}

		lines = append(lines, Line{
			ProductID: p.ID,
			Quantity:  l.Quantity,
			UnitPrice: s.pricer.EffectivePriceAt(now, p.Price),
		})
	}
	return lines, nil
}

// Get returns a single order aggregate by id.
func (s *AssemblyService) Get(ctx context.Context, id int64) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListAll returns all orders; an empty store is reported as ErrNotFound.
func (s *AssemblyService) ListAll(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return orders, nil
}

// Delete removes an order by id, reporting ErrNotFound for unknown ids.
func (s *AssemblyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// newAggregate derives the aggregate fields from the assembled lines.
func newAggregate(customerID int64, lines []Line) *Order {
	quantity := 0
	total := decimal.Zero
	for _, l := range lines {
		quantity += l.Quantity
		total = total.Add(l.Subtotal())
	}

	return &Order{
		CustomerID: customerID,
		Lines:      lines,
		Quantity:   quantity,
		Total:      total.Round(2),
	}
}
