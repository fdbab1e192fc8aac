package layout

import "monthcal/internal/model"

// Navigator holds the displayed month and moves it within Bounds.
// It is not safe for concurrent use; each presentation session owns one.
type Navigator struct {
	current model.YearMonth
	bounds  Bounds
}

// NewNavigator starts at today with bounds collapsed to today.
func NewNavigator(today model.YearMonth) *Navigator {
	return &Navigator{
		current: today,
		bounds:  Bounds{Min: today, Max: today},
	}
}

// Current returns the displayed month.
func (n *Navigator) Current() model.YearMonth {
	return n.current
}

// Bounds returns the installed bounds.
func (n *Navigator) Bounds() Bounds {
	return n.bounds
}

// CanGoPrevious reports whether GoPrevious would move.
func (n *Navigator) CanGoPrevious() bool {
	return n.current.After(n.bounds.Min)
}

// CanGoNext reports whether GoNext would move.
func (n *Navigator) CanGoNext() bool {
	return n.current.Before(n.bounds.Max)
}

// GoPrevious moves one month back. It is a no-op at the lower bound.
func (n *Navigator) GoPrevious() bool {
	if !n.CanGoPrevious() {
		return false
	}
	n.current = n.current.Prev()
	return true
}

// GoNext moves one month forward. It is a no-op at the upper bound.
func (n *Navigator) GoNext() bool {
	if !n.CanGoNext() {
		return false
	}
	n.current = n.current.Next()
	return true
}

// SetBounds installs recomputed bounds and clamps the displayed month to the
// nearest bound when it falls outside them.
func (n *Navigator) SetBounds(b Bounds) {
	if b.Max.Before(b.Min) {
		b.Min, b.Max = b.Max, b.Min
	}
	n.bounds = b
	n.current = n.clamp(n.current)
}

// Seek displays ym, clamped into the bounds. It restores state kept outside
// the navigator, such as a month carried in a URL.
func (n *Navigator) Seek(ym model.YearMonth) {
	n.current = n.clamp(ym)
}

func (n *Navigator) clamp(ym model.YearMonth) model.YearMonth {
	switch {
	case ym.Before(n.bounds.Min):
		return n.bounds.Min
	case ym.After(n.bounds.Max):
		return n.bounds.Max
	default:
		return ym
	}
}
