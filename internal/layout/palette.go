package layout

import "monthcal/internal/model"

// Palette is the fixed color order used for source events.
var Palette = []model.ColorToken{
	model.ColorBlue,
	model.ColorPurple,
	model.ColorGreen,
	model.ColorOrange,
	model.ColorPink,
	model.ColorIndigo,
	model.ColorTeal,
	model.ColorRed,
	model.ColorYellow,
	model.ColorCyan,
}

// ColorFor returns the color of the i-th event of the filtered list.
func ColorFor(i int) model.ColorToken {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// CalendarFilter restricts expansion to a single calendar. The zero value
// keeps every calendar.
type CalendarFilter struct {
	id     string
	active bool
}

// AllCalendars returns the pass-through filter.
func AllCalendars() CalendarFilter {
	return CalendarFilter{}
}

// OnlyCalendar keeps events whose CalendarID equals id.
func OnlyCalendar(id string) CalendarFilter {
	return CalendarFilter{id: id, active: true}
}

// ID returns the selected calendar and whether a selection is active.
func (f CalendarFilter) ID() (string, bool) {
	return f.id, f.active
}

// Match reports whether ev passes the filter.
func (f CalendarFilter) Match(ev model.RawEvent) bool {
	return !f.active || ev.CalendarID == f.id
}

// Apply returns the events passing the filter, preserving order.
func (f CalendarFilter) Apply(events []model.RawEvent) []model.RawEvent {
	if !f.active {
		return events
	}
	out := make([]model.RawEvent, 0, len(events))
	for _, ev := range events {
		if f.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Calendars lists the distinct calendars of an event set in first-seen order.
// Events without a calendar id are not listed. A calendar seen first without a
// name picks up the first name reported later.
func Calendars(events []model.RawEvent) []model.CalendarRef {
	seen := make(map[string]int)
	out := make([]model.CalendarRef, 0)
	for _, ev := range events {
		if ev.CalendarID == "" {
			continue
		}
		if i, ok := seen[ev.CalendarID]; ok {
			if out[i].Name == "" {
				out[i].Name = ev.CalendarName
			}
			continue
		}
		seen[ev.CalendarID] = len(out)
		out = append(out, model.CalendarRef{ID: ev.CalendarID, Name: ev.CalendarName})
	}
	return out
}

// FilterChoices returns at most n calendars for filter controls. It only
// trims what is offered to the user; filtering itself accepts any id.
func FilterChoices(cals []model.CalendarRef, n int) []model.CalendarRef {
	if n < 0 || len(cals) <= n {
		return cals
	}
	return cals[:n]
}
