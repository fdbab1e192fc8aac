package layout

import (
	"time"

	"monthcal/internal/model"
)

// span is an event resolved to the civil dates it covers.
type span struct {
	start, end model.Date
	firstTime  string
}

// resolveSpan computes the covered dates of ev. Date-only ends are exclusive
// and are pulled back one day; timed ends are used as given. A missing
// boundary mirrors the other one. ok is false when neither is usable.
func resolveSpan(ev model.RawEvent, loc *time.Location) (span, bool) {
	start, end := ev.Start, ev.End
	switch {
	case !start.Valid() && !end.Valid():
		return span{}, false
	case !start.Valid():
		start = end
	case !end.Valid():
		end = start
	}

	var s span
	s.start = start.CalendarDate(loc)
	s.end = end.CalendarDate(loc)
	if end.DateOnly {
		s.end = s.end.AddDays(-1)
	}
	if s.end.Before(s.start) {
		s.end = s.start
	}

	if start.DateOnly {
		s.firstTime = model.AllDay
	} else {
		s.firstTime = start.Time.In(loc).Format("15:04")
	}
	return s, true
}

// Expand produces one DisplayEntry per (event, day) pair for the days of
// window the event touches. Color is fixed by each event's position in the
// filtered list, so it does not depend on which days are visible.
func Expand(events []model.RawEvent, window model.YearMonth, filter CalendarFilter, loc *time.Location) []model.DisplayEntry {
	if loc == nil {
		loc = time.Local
	}

	filtered := filter.Apply(events)
	out := make([]model.DisplayEntry, 0, len(filtered))

	for i, ev := range filtered {
		s, ok := resolveSpan(ev, loc)
		if !ok {
			continue
		}
		if s.end.YearMonth().Before(window) || s.start.YearMonth().After(window) {
			continue
		}

		color := ColorFor(i)
		multi := s.start != s.end

		// Only walk the part of the span inside the window.
		day := s.start
		if day.YearMonth().Before(window) {
			day = model.Date{Year: window.Year, Month: window.Month, Day: 1}
		}
		for ; !day.After(s.end) && window.Contains(day); day = day.AddDays(1) {
			first := day == s.start
			t := model.AllDay
			if first {
				t = s.firstTime
			}
			out = append(out, model.DisplayEntry{
				SourceEventID: ev.ID,
				CalendarID:    ev.CalendarID,
				Day:           day.Day,
				Title:         ev.Title,
				Time:          t,
				Description:   ev.Description,
				Location:      ev.Location,
				Color:         color,
				IsMultiDay:    multi,
				IsFirstDay:    first,
				IsLastDay:     day == s.end,
			})
		}
	}

	return out
}
