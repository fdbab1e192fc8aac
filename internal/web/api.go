package web

import (
	"net/http"
	"time"

	"monthcal/internal/layout"
	"monthcal/internal/model"
	"monthcal/internal/source"
)

type monthResponse struct {
	Window      model.YearMonth              `json:"window"`
	Calendar    string                       `json:"calendar,omitempty"`
	Days        map[int][]model.DisplayEntry `json:"days"`
	Count       int                          `json:"count"`
	CanPrevious bool                         `json:"can_previous"`
	CanNext     bool                         `json:"can_next"`
	Bounds      layout.Bounds                `json:"bounds"`
	Timezone    string                       `json:"timezone"`
	Status      source.Status                `json:"status"`
}

type calendarsResponse struct {
	Calendars []model.CalendarRef `json:"calendars"`
	// Choices are the calendars offered as filter buttons.
	Choices []model.CalendarRef `json:"choices"`
}

type statusResponse struct {
	source.Snapshot
	EventCount int    `json:"event_count"`
	Today      string `json:"today"`
}

// requireReady answers 503 while there is no usable snapshot.
func requireReady(w http.ResponseWriter, snap source.Snapshot) bool {
	switch snap.Status {
	case source.StatusLoading:
		writeError(w, http.StatusServiceUnavailable, "events are loading")
		return false
	case source.StatusError:
		writeError(w, http.StatusServiceUnavailable, "failed to load events: "+snap.Error)
		return false
	}
	return true
}

// handleAPIMonth returns the day-to-entries mapping of a month.
//
// GET /api/month?year=2024&month=3&calendar=team
func (s *Server) handleAPIMonth(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if !requireReady(w, snap) {
		return
	}

	v := s.viewFor(snap)
	req, err := resolveMonth(r.URL.Query(), v)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	window := req.nav.Current()
	m := s.month(v, snap.Events, window, req.filter)
	days := m.Days
	if days == nil {
		days = map[int][]model.DisplayEntry{}
	}
	writeJSON(w, http.StatusOK, monthResponse{
		Window:      window,
		Calendar:    req.calendar,
		Days:        days,
		Count:       m.Count(),
		CanPrevious: req.nav.CanGoPrevious(),
		CanNext:     req.nav.CanGoNext(),
		Bounds:      v.bounds,
		Timezone:    s.loc.String(),
		Status:      snap.Status,
	})
}

func (s *Server) handleAPICalendars(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	if !requireReady(w, snap) {
		return
	}
	v := s.viewFor(snap)
	writeJSON(w, http.StatusOK, calendarsResponse{
		Calendars: v.cals,
		Choices:   layout.FilterChoices(v.cals, filterChoices),
	})
}

func (s *Server) handleAPIBounds(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	if !requireReady(w, snap) {
		return
	}
	writeJSON(w, http.StatusOK, s.viewFor(snap).bounds)
}

// handleAPIStatus is always answered, whatever the snapshot state.
func (s *Server) handleAPIStatus(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	writeJSON(w, http.StatusOK, statusResponse{
		Snapshot:   snap,
		EventCount: len(snap.Events),
		Today:      s.today().String(),
	})
}

// handleAPIRefresh refreshes the snapshot synchronously and reports the
// resulting status.
func (s *Server) handleAPIRefresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	err := s.store.Refresh(r.Context())
	snap := s.store.Snapshot()
	resp := statusResponse{Snapshot: snap, EventCount: len(snap.Events), Today: s.today().String()}
	if err != nil && snap.Status != source.StatusReady {
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	w.Header().Set("X-Refresh-Duration", time.Since(start).Round(time.Millisecond).String())
	writeJSON(w, http.StatusOK, resp)
}
