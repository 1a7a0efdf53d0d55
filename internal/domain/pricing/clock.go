package pricing

import "time"

// Clock supplies the current instant. Discount-window evaluation never reads
// the wall clock directly; it always goes through a Clock so tests can pin
// time to a fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }
