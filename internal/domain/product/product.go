package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist. It also
// covers the listing contract: an empty catalog surfaces as not found, never
// as an empty success.
var ErrNotFound = errors.New("product not found")

// Product is a catalog item. Price is the persisted list price; discounting
// never mutates it, only derives an effective price per read.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Stock int
}

// PricedProduct is a read view of a product with the discount applied.
type PricedProduct struct {
	Product
	// EffectivePrice is the list price after the active discount strategy.
	EffectivePrice decimal.Decimal
	// Promotion names the applied strategy, "none" outside any window.
	Promotion string
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
