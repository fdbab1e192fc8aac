package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"monthcal/internal/layout"
	"monthcal/internal/model"
	"monthcal/internal/source"
)

// viewCache memoizes what is derived from one snapshot version on one day:
// bounds, the calendar list and every month built so far.
type viewCache struct {
	version uint64
	today   model.Date
	bounds  layout.Bounds
	cals    []model.CalendarRef
	months  map[monthKey]layout.Month
}

type monthKey struct {
	window   model.YearMonth
	calendar string
	filtered bool
}

func (s *Server) today() model.Date {
	return model.DateOf(s.now().In(s.loc))
}

func (s *Server) viewFor(snap source.Snapshot) *viewCache {
	today := s.today()

	s.viewMu.RLock()
	v := s.view
	s.viewMu.RUnlock()
	if v != nil && v.version == snap.Version && v.today == today {
		return v
	}

	v = &viewCache{
		version: snap.Version,
		today:   today,
		bounds:  layout.ResolveBounds(snap.Events, today.YearMonth(), s.loc),
		cals:    layout.Calendars(snap.Events),
		months:  make(map[monthKey]layout.Month),
	}
	s.viewMu.Lock()
	s.view = v
	s.viewMu.Unlock()
	return v
}

func (s *Server) month(v *viewCache, events []model.RawEvent, window model.YearMonth, filter layout.CalendarFilter) layout.Month {
	id, filtered := filter.ID()
	key := monthKey{window: window, calendar: id, filtered: filtered}

	s.viewMu.RLock()
	m, ok := v.months[key]
	s.viewMu.RUnlock()
	if ok {
		return m
	}

	m = layout.Build(events, window, filter, s.loc)
	if filtered && !v.hasCalendar(id) {
		// Unknown ids come straight from the query; keep them out of the memo.
		return m
	}
	s.viewMu.Lock()
	v.months[key] = m
	s.viewMu.Unlock()
	return m
}

func (v *viewCache) hasCalendar(id string) bool {
	for _, c := range v.cals {
		if c.ID == id {
			return true
		}
	}
	return false
}

// monthRequest is the navigation state carried by a request's query.
type monthRequest struct {
	nav      *layout.Navigator
	filter   layout.CalendarFilter
	calendar string
}

var errBadMonth = errors.New("year and month must be a valid month, e.g. year=2024&month=3")

// resolveMonth applies ?year=&month=&calendar= on top of the default
// navigation state. The requested month is clamped into the bounds.
func resolveMonth(q url.Values, v *viewCache) (monthRequest, error) {
	nav := layout.NewNavigator(v.today.YearMonth())
	nav.SetBounds(v.bounds)

	req := monthRequest{nav: nav, filter: layout.AllCalendars()}
	if c := q.Get("calendar"); c != "" && c != "all" {
		req.filter = layout.OnlyCalendar(c)
		req.calendar = c
	}

	ys, ms := q.Get("year"), q.Get("month")
	if ys == "" && ms == "" {
		return req, nil
	}
	year, yerr := strconv.Atoi(ys)
	month, merr := strconv.Atoi(ms)
	if yerr != nil || merr != nil || month < 1 || month > 12 {
		return req, errBadMonth
	}
	nav.Seek(model.YearMonth{Year: year, Month: time.Month(month)})
	return req, nil
}

func calendarURL(ym model.YearMonth, calendar string) string {
	q := url.Values{}
	q.Set("year", strconv.Itoa(ym.Year))
	q.Set("month", strconv.Itoa(int(ym.Month)))
	if calendar != "" {
		q.Set("calendar", calendar)
	}
	return "/calendar?" + q.Encode()
}

func eventURL(e model.DisplayEntry, ym model.YearMonth, calendar string) string {
	q := url.Values{}
	q.Set("id", e.SourceEventID)
	q.Set("day", strconv.Itoa(e.Day))
	q.Set("year", strconv.Itoa(ym.Year))
	q.Set("month", strconv.Itoa(int(ym.Month)))
	if calendar != "" {
		q.Set("calendar", calendar)
	}
	return "/calendar/event?" + q.Encode()
}

func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}
