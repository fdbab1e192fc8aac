package web

import (
	"net/http"
	"strconv"
	"strings"

	"monthcal/internal/layout"
	"monthcal/internal/model"
	"monthcal/internal/source"
)

// filterChoices is how many calendars get their own filter button.
const filterChoices = 3

type navView struct {
	URL     string
	Enabled bool
}

type filterView struct {
	Label  string
	URL    string
	Active bool
}

type entryView struct {
	Title      string
	Time       string
	Location   string
	Tooltip    string
	URL        string
	Color      model.ColorToken
	IsMultiDay bool
	IsFirstDay bool
	IsLastDay  bool
}

type dayView struct {
	Day     int
	Blank   bool
	IsToday bool
	Entries []entryView
}

type calendarPage struct {
	L        labels
	Title    string
	Weekdays []string
	Rows     [][]dayView
	Filters  []filterView
	Prev     navView
	Next     navView
	Stale    bool
}

type eventPage struct {
	L           labels
	Title       string
	Time        string
	Date        string
	Location    string
	Description string
	IsMultiDay  bool
	Color       model.ColorToken
	BackURL     string
}

type statusPage struct {
	L       labels
	Title   string
	Message string
	IsError bool
	Refresh bool
}

// statusGate renders the loading / error page when there is nothing to
// show yet. It reports whether the caller may continue.
func (s *Server) statusGate(w http.ResponseWriter, snap source.Snapshot) bool {
	switch snap.Status {
	case source.StatusLoading:
		s.render(w, http.StatusOK, "status.html", statusPage{L: s.text, Title: s.text.Loading, Message: s.text.Loading, Refresh: true})
		return false
	case source.StatusError:
		s.render(w, http.StatusServiceUnavailable, "status.html", statusPage{L: s.text, Title: s.text.LoadError, Message: s.text.LoadError, IsError: true, Refresh: true})
		return false
	}
	return true
}

// handleCalendar renders the month grid.
//
// GET /calendar?year=2024&month=3&calendar=team
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	noStore(w)
	snap := s.store.Snapshot()
	if !s.statusGate(w, snap) {
		return
	}

	v := s.viewFor(snap)
	// A malformed month falls back to the default month on the HTML page.
	req, _ := resolveMonth(r.URL.Query(), v)
	window := req.nav.Current()
	m := s.month(v, snap.Events, window, req.filter)

	weekStart := s.cfg.FirstWeekday()
	page := calendarPage{
		L:        s.text,
		Title:    s.text.monthTitle(window),
		Weekdays: s.text.weekdayHeaders(layout.Weekdays(weekStart)),
		Filters:  s.filterViews(v.cals, window, req.calendar),
		Stale:    snap.Stale,
	}
	if prev := *req.nav; prev.GoPrevious() {
		page.Prev = navView{URL: calendarURL(prev.Current(), req.calendar), Enabled: true}
	}
	if next := *req.nav; next.GoNext() {
		page.Next = navView{URL: calendarURL(next.Current(), req.calendar), Enabled: true}
	}

	for _, row := range layout.Grid(window, weekStart, v.today) {
		days := make([]dayView, 0, len(row))
		for _, c := range row {
			d := dayView{Day: c.Day, Blank: c.Blank, IsToday: c.IsToday}
			if !c.Blank {
				for _, e := range m.Entries(c.Day) {
					d.Entries = append(d.Entries, s.entryView(e, window, req.calendar))
				}
			}
			days = append(days, d)
		}
		page.Rows = append(page.Rows, days)
	}

	s.render(w, http.StatusOK, "calendar.html", page)
}

func (s *Server) filterViews(cals []model.CalendarRef, window model.YearMonth, selected string) []filterView {
	out := []filterView{{Label: s.text.All, URL: calendarURL(window, ""), Active: selected == ""}}
	for _, c := range layout.FilterChoices(cals, filterChoices) {
		label := c.Name
		if label == "" {
			label = c.ID
		}
		out = append(out, filterView{Label: label, URL: calendarURL(window, c.ID), Active: selected == c.ID})
	}
	return out
}

func (s *Server) entryView(e model.DisplayEntry, window model.YearMonth, calendar string) entryView {
	title := s.text.title(e.Title)
	tooltip := title
	if e.Location != "" {
		tooltip += " - " + e.Location
	}
	if e.Description != "" {
		tooltip += "\n" + plainDescription(e.Description)
	}
	return entryView{
		Title:      title,
		Time:       s.text.timeLabel(e.Time),
		Location:   e.Location,
		Tooltip:    tooltip,
		URL:        eventURL(e, window, calendar),
		Color:      e.Color,
		IsMultiDay: e.IsMultiDay,
		IsFirstDay: e.IsFirstDay,
		IsLastDay:  e.IsLastDay,
	}
}

// handleEvent renders the detail page of one entry.
//
// GET /calendar/event?id=abc&day=4&year=2024&month=3
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	noStore(w)
	snap := s.store.Snapshot()
	if !s.statusGate(w, snap) {
		return
	}

	q := r.URL.Query()
	v := s.viewFor(snap)
	req, err := resolveMonth(q, v)
	day := parseIntDefault(q.Get("day"), 0)
	window := req.nav.Current()
	back := calendarURL(window, req.calendar)

	var entry model.DisplayEntry
	found := false
	if err == nil && q.Get("id") != "" {
		entry, found = s.month(v, snap.Events, window, req.filter).Find(q.Get("id"), day)
	}
	if !found {
		s.render(w, http.StatusNotFound, "status.html", statusPage{L: s.text, Title: s.text.NotFound, Message: s.text.NotFound, IsError: true})
		return
	}

	s.render(w, http.StatusOK, "event.html", eventPage{
		L:           s.text,
		Title:       s.text.title(entry.Title),
		Time:        s.text.timeLabel(entry.Time),
		Date:        strconv.Itoa(day) + " " + s.text.monthTitle(window),
		Location:    entry.Location,
		Description: plainDescription(entry.Description),
		IsMultiDay:  entry.IsMultiDay,
		Color:       entry.Color,
		BackURL:     back,
	})
}

var breakReplacer = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n")

// plainDescription turns the <br> line breaks calendar apps put into
// descriptions back into newlines. Everything else is escaped on render.
func plainDescription(d string) string {
	return breakReplacer.Replace(d)
}
