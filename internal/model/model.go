package model

import (
	"strconv"
	"time"
)

// AllDay is the display time carried by date-only events and by every
// continuation day of a multi-day event.
const AllDay = "all-day"

// When is a start or end boundary of an event: either a calendar date
// (DateOnly, day granularity, stored at 00:00 UTC) or a concrete instant.
// A zero Time means the boundary is missing or could not be parsed.
type When struct {
	Time     time.Time `json:"time"`
	DateOnly bool      `json:"date_only,omitempty"`
}

// OnDate returns a date-only boundary.
func OnDate(year int, month time.Month, day int) When {
	return When{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), DateOnly: true}
}

// At returns a timed boundary.
func At(t time.Time) When {
	return When{Time: t}
}

// Valid reports whether the boundary carries a usable value.
func (w When) Valid() bool {
	return !w.Time.IsZero()
}

// CalendarDate resolves the boundary to a civil date. Date-only values are
// taken as-is; instants are converted into loc first.
func (w When) CalendarDate(loc *time.Location) Date {
	if w.DateOnly {
		return DateOf(w.Time)
	}
	if loc == nil {
		loc = time.Local
	}
	return DateOf(w.Time.In(loc))
}

// Instant returns the boundary as an instant in loc. Date-only values map to
// local midnight of their date.
func (w When) Instant(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if w.DateOnly {
		return time.Date(w.Time.Year(), w.Time.Month(), w.Time.Day(), 0, 0, 0, 0, loc)
	}
	return w.Time.In(loc)
}

// RawEvent is one event as received from a source. Values are treated as
// immutable once they leave the source package.
type RawEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`

	Start When `json:"start"`
	End   When `json:"end"`

	CalendarID   string `json:"calendar_id,omitempty"`
	CalendarName string `json:"calendar_name,omitempty"`
}

// ColorToken names a palette slot. Presentation layers map tokens to styles.
type ColorToken string

const (
	ColorBlue   ColorToken = "blue"
	ColorPurple ColorToken = "purple"
	ColorGreen  ColorToken = "green"
	ColorOrange ColorToken = "orange"
	ColorPink   ColorToken = "pink"
	ColorIndigo ColorToken = "indigo"
	ColorTeal   ColorToken = "teal"
	ColorRed    ColorToken = "red"
	ColorYellow ColorToken = "yellow"
	ColorCyan   ColorToken = "cyan"
)

// DisplayEntry is one event's appearance on one day of the displayed month.
type DisplayEntry struct {
	SourceEventID string     `json:"source_event_id"`
	CalendarID    string     `json:"calendar_id,omitempty"`
	Day           int        `json:"day"`
	Title         string     `json:"title"`
	Time          string     `json:"time"`
	Description   string     `json:"description,omitempty"`
	Location      string     `json:"location,omitempty"`
	Color         ColorToken `json:"color"`
	IsMultiDay    bool       `json:"is_multi_day"`
	IsFirstDay    bool       `json:"is_first_day"`
	IsLastDay     bool       `json:"is_last_day"`
}

// Key is the composite identity of an entry: source event plus day.
func (e DisplayEntry) Key() string {
	return e.SourceEventID + "#" + strconv.Itoa(e.Day)
}

// IsAllDay reports whether the entry carries no specific time.
func (e DisplayEntry) IsAllDay() bool {
	return e.Time == AllDay
}

// CalendarRef identifies a calendar observed in the event set.
type CalendarRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
