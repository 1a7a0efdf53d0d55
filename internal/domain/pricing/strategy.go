package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Strategy computes the effective price for a given list price. Strategies
// are stateless and safe to share across requests. The list price itself is
// never mutated; discounting only produces a derived value.
type Strategy interface {
	// EffectivePrice returns the price after applying the discount.
	EffectivePrice(listPrice decimal.Decimal) decimal.Decimal
	// Name identifies the strategy in logs and responses.
	Name() string
}

// NoDiscount is the identity strategy: the effective price is the list price.
type NoDiscount struct{}

func (NoDiscount) EffectivePrice(listPrice decimal.Decimal) decimal.Decimal {
	return listPrice
}

func (NoDiscount) Name() string { return "none" }

// PercentageOff reduces the list price by a fixed percentage.
type PercentageOff struct {
	// Percent is the discount rate, e.g. 50 for half price. Rates above 100
	// clamp the result at zero rather than going negative.
	Percent decimal.Decimal
	// Label is a human-readable name for the promotion, e.g. "black friday".
	Label string
}

// NewPercentageOff creates a PercentageOff strategy from an integer rate.
func NewPercentageOff(percent int64, label string) PercentageOff {
	return PercentageOff{Percent: decimal.NewFromInt(percent), Label: label}
}

func (s PercentageOff) EffectivePrice(listPrice decimal.Decimal) decimal.Decimal {
	discount := listPrice.Mul(s.Percent).Div(hundred)
	price := listPrice.Sub(discount)
	return floorAtZero(price).Round(2)
}

func (s PercentageOff) Name() string { return s.Label }

// floorAtZero clamps negative values to zero.
func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
