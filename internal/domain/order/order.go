package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for order validation and lookup.
var (
	ErrNotFound   = errors.New("order not found")
	ErrEmptyLines = errors.New("order lines required")
)

// CustomerNotFoundError indicates the referenced customer does not exist.
type CustomerNotFoundError struct {
	CustomerID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %d not found", e.CustomerID)
}

// ProductNotFoundError indicates a requested line references a product that
// does not exist. It aborts the whole order.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %d", e.ProductID)
}

// Line is one priced position of an order. UnitPrice is the effective price
// frozen at assembly time; later product price changes never rewrite it.
type Line struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns UnitPrice * Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the persisted aggregate: the order row together with its lines,
// committed and replaced as one unit. Quantity and Total are derived from the
// lines at assembly time and never accepted from the caller.
type Order struct {
	ID         int64
	CustomerID int64
	Lines      []Line
	Quantity   int
	Total      decimal.Decimal
	CreatedAt  time.Time
}

// Repository defines persistence operations for order aggregates. Create and
// Update commit the order row and all line rows in one transaction.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id int64) error
}
