package layout

import (
	"time"

	"monthcal/internal/model"
)

// Month is the day-to-entries mapping for one displayed month.
type Month struct {
	Window model.YearMonth              `json:"window"`
	Days   map[int][]model.DisplayEntry `json:"days"`
}

// Entries returns the ordered bucket for day; it is empty for days without
// events.
func (m Month) Entries(day int) []model.DisplayEntry {
	return m.Days[day]
}

// Find returns the entry of source event id on day.
func (m Month) Find(id string, day int) (model.DisplayEntry, bool) {
	for _, e := range m.Days[day] {
		if e.SourceEventID == id {
			return e, true
		}
	}
	return model.DisplayEntry{}, false
}

// Count returns the total number of entries across all days.
func (m Month) Count() int {
	n := 0
	for _, bucket := range m.Days {
		n += len(bucket)
	}
	return n
}

// Build runs expansion and bucketing for window.
func Build(events []model.RawEvent, window model.YearMonth, filter CalendarFilter, loc *time.Location) Month {
	return Month{
		Window: window,
		Days:   BucketByDay(Expand(events, window, filter, loc)),
	}
}

// Cell is one square of a month grid. Blank cells pad the first week.
type Cell struct {
	Day     int
	Blank   bool
	IsToday bool
}

// Grid lays out the days of ym as rows of seven cells starting on weekStart.
// The last row is padded with blanks as well.
func Grid(ym model.YearMonth, weekStart time.Weekday, today model.Date) [][]Cell {
	lead := (int(ym.FirstWeekday()) - int(weekStart) + 7) % 7

	cells := make([]Cell, 0, lead+ym.Days()+6)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for d := 1; d <= ym.Days(); d++ {
		cells = append(cells, Cell{
			Day:     d,
			IsToday: ym.Contains(today) && today.Day == d,
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{Blank: true})
	}

	rows := make([][]Cell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

// Weekdays returns the seven weekdays in display order starting on weekStart.
func Weekdays(weekStart time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}
