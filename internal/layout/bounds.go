// Package layout turns a snapshot of raw events into the per-day entries of a
// month view. Everything here is pure: the caller supplies "today", the
// display location and the current window, and re-invokes on any change.
package layout

import (
	"time"

	"monthcal/internal/model"
)

// Bounds is the navigable month range derived from an event set.
type Bounds struct {
	Min model.YearMonth `json:"min"`
	Max model.YearMonth `json:"max"`
}

// Contains reports whether ym lies within the bounds, inclusive.
func (b Bounds) Contains(ym model.YearMonth) bool {
	return !ym.Before(b.Min) && !ym.After(b.Max)
}

// ResolveBounds returns the months of the earliest and latest event start.
// Starts are compared as full instants in loc. Events without a usable start
// are ignored; when nothing usable remains both bounds collapse to today.
func ResolveBounds(events []model.RawEvent, today model.YearMonth, loc *time.Location) Bounds {
	var earliest, latest time.Time
	found := false

	for _, ev := range events {
		if !ev.Start.Valid() {
			continue
		}
		at := ev.Start.Instant(loc)
		if !found {
			earliest, latest = at, at
			found = true
			continue
		}
		if at.Before(earliest) {
			earliest = at
		}
		if at.After(latest) {
			latest = at
		}
	}

	if !found {
		return Bounds{Min: today, Max: today}
	}
	return Bounds{Min: model.MonthOf(earliest), Max: model.MonthOf(latest)}
}
