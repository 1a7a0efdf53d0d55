package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pricer combines a clock and a promotional schedule into a single
// effective-price computation. It holds no mutable selection state, so one
// Pricer is safely shared across requests.
type Pricer struct {
	clock    Clock
	schedule Schedule
}

// NewPricer creates a Pricer over the given clock and schedule.
func NewPricer(clock Clock, schedule Schedule) *Pricer {
	return &Pricer{clock: clock, schedule: schedule}
}

// Now exposes the pricer's clock so callers can pin one instant per request.
func (p *Pricer) Now() time.Time {
	return p.clock.Now()
}

// EffectivePrice returns the discounted price for the list price at the
// current instant.
func (p *Pricer) EffectivePrice(listPrice decimal.Decimal) decimal.Decimal {
	return p.EffectivePriceAt(p.clock.Now(), listPrice)
}

// EffectivePriceAt returns the discounted price for the list price at the
// given instant. Selection and application are pure given now.
func (p *Pricer) EffectivePriceAt(now time.Time, listPrice decimal.Decimal) decimal.Decimal {
	return p.schedule.StrategyFor(now).EffectivePrice(listPrice)
}

// ActiveStrategy returns the strategy the schedule selects for the given
// instant.
func (p *Pricer) ActiveStrategy(now time.Time) Strategy {
	return p.schedule.StrategyFor(now)
}
