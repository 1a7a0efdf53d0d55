package pricing

import "time"

// Window is a recurring annual promotional period. A window covers every
// instant whose month/day falls between From and Until, both inclusive.
// Windows that wrap the year boundary (e.g. Dec 20 to Jan 6) are supported.
type Window struct {
	FromMonth  time.Month
	FromDay    int
	UntilMonth time.Month
	UntilDay   int
	Strategy   Strategy
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	day := dayOfYear(t.Month(), t.Day())
	from := dayOfYear(w.FromMonth, w.FromDay)
	until := dayOfYear(w.UntilMonth, w.UntilDay)

	if from <= until {
		return day >= from && day <= until
	}
	// Window wraps the year boundary.
	return day >= from || day <= until
}

// dayOfYear gives a comparable ordinal for a month/day pair. It uses a fixed
// 31-day month grid, which keeps ordering correct without caring about the
// actual calendar length of each month.
func dayOfYear(m time.Month, d int) int {
	return int(m)*31 + d
}

// Schedule is an ordered list of promotional windows evaluated
// first-match-wins. Selection is pure given the supplied instant.
type Schedule struct {
	windows []Window
}

// NewSchedule builds a schedule from the given windows. Order matters: when
// windows overlap, the earlier entry wins.
func NewSchedule(windows ...Window) Schedule {
	return Schedule{windows: windows}
}

// StrategyFor returns the strategy active at the given instant, falling back
// to NoDiscount when no window matches.
func (s Schedule) StrategyFor(now time.Time) Strategy {
	for _, w := range s.windows {
		if w.Contains(now) {
			return w.Strategy
		}
	}
	return NoDiscount{}
}

// SeasonalSchedule is the promotional calendar the shop runs with: the given
// rate off on Black Friday. Seasonal sales (Christmas, summer) slot in as
// additional windows.
func SeasonalSchedule(blackFridayPercent int64) Schedule {
	return NewSchedule(
		Window{
			FromMonth:  time.November,
			FromDay:    29,
			UntilMonth: time.November,
			UntilDay:   29,
			Strategy:   NewPercentageOff(blackFridayPercent, "black friday"),
		},
	)
}

// DefaultSchedule is SeasonalSchedule at the standard half-price rate.
func DefaultSchedule() Schedule {
	return SeasonalSchedule(50)
}
