package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

// Status is the lifecycle state of the event snapshot.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// Snapshot is an immutable view of the latest refresh. Events must not be
// modified by readers.
type Snapshot struct {
	Status    Status           `json:"status"`
	Events    []model.RawEvent `json:"-"`
	Error     string           `json:"error,omitempty"`
	Failed    []string         `json:"failed,omitempty"`
	Stale     bool             `json:"stale"`
	UpdatedAt time.Time        `json:"updated_at,omitempty"`
	// Version increases with every refresh that produced events.
	Version uint64 `json:"version"`
}

// Store fetches from all providers and publishes the merged result.
type Store struct {
	providers []Provider
	rangeFn   func() Range
	now       func() time.Time

	refreshMu sync.Mutex

	mu   sync.RWMutex
	snap Snapshot
}

// NewStore creates a store in the loading state. rangeFn is evaluated at
// each refresh so the window follows the current date.
func NewStore(providers []Provider, rangeFn func() Range) *Store {
	return &Store{
		providers: providers,
		rangeFn:   rangeFn,
		now:       time.Now,
		snap:      Snapshot{Status: StatusLoading},
	}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

type fetchOutcome struct {
	events []model.RawEvent
	err    error
}

// Refresh queries every provider concurrently. Events keep provider order.
// Failing providers are logged and skipped; when every provider fails the
// previous events (if any) stay published and are marked stale.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	r := s.rangeFn()
	outcomes := make([]fetchOutcome, len(s.providers))

	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			events, err := p.Fetch(ctx, r)
			outcomes[i] = fetchOutcome{events: stamp(p, events), err: err}
		}(i, p)
	}
	wg.Wait()

	merged := make([]model.RawEvent, 0)
	failed := make([]string, 0)
	var errs []error
	for i, o := range outcomes {
		name := s.providers[i].Name()
		if o.err != nil {
			appLog.Error("source refresh failed", o.err, "provider", name)
			failed = append(failed, name)
			errs = append(errs, fmt.Errorf("%s: %w", name, o.err))
			continue
		}
		merged = append(merged, o.events...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.providers) > 0 && len(failed) == len(s.providers) {
		err := errors.Join(errs...)
		s.snap.Error = err.Error()
		s.snap.Failed = failed
		if s.snap.Status == StatusReady {
			s.snap.Stale = true
			appLog.Warn("all sources failed, keeping previous events", "event_count", len(s.snap.Events))
		} else {
			s.snap.Status = StatusError
		}
		return err
	}

	s.snap = Snapshot{
		Status:    StatusReady,
		Events:    merged,
		Failed:    failed,
		UpdatedAt: s.now(),
		Version:   s.snap.Version + 1,
	}
	if len(errs) > 0 {
		s.snap.Error = errors.Join(errs...).Error()
	}
	appLog.Info("source refresh completed", "event_count", len(merged), "failed", len(failed))
	return nil
}

// stamp fills in calendar metadata for providers bound to one calendar.
func stamp(p Provider, events []model.RawEvent) []model.RawEvent {
	c, ok := p.(Calendar)
	if !ok {
		return events
	}
	ref := c.CalendarRef()
	for i := range events {
		if events[i].CalendarID == "" {
			events[i].CalendarID = ref.ID
			if events[i].CalendarName == "" {
				events[i].CalendarName = ref.Name
			}
		}
	}
	return events
}
