package source

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

const defaultMaxOccurrencesPerEvent = 5000

// expandICS turns parsed VEVENTs into concrete raw events overlapping r.
// Recurring series are expanded with EXDATE removal and RECURRENCE-ID
// overrides applied; each series yields at most maxPerEvent instances.
func expandICS(events []vevent, r Range, maxPerEvent int) []model.RawEvent {
	if maxPerEvent <= 0 {
		maxPerEvent = defaultMaxOccurrencesPerEvent
	}

	bases := make([]vevent, 0, len(events))
	overridesByUID := make(map[string][]vevent)
	for _, ev := range latestRevisions(events) {
		if ev.isOverride() {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
		} else {
			bases = append(bases, ev)
		}
	}

	out := make([]model.RawEvent, 0, len(bases))
	for _, ev := range bases {
		if ev.RawRRule == "" {
			if overlaps(ev.Start, ev.End, r) {
				out = append(out, toRawEvent(ev, ev.UID, ev.Start, ev.End))
			}
			continue
		}

		occ, truncated := expandSeries(ev, overridesByUID[ev.UID], r, maxPerEvent)
		if truncated {
			appLog.Error("ics expand truncated", errors.New("max occurrences reached"), "uid", ev.UID, "cap", maxPerEvent)
		}
		out = append(out, occ...)
	}
	return out
}

// latestRevisions keeps one VEVENT per UID and RECURRENCE-ID, the one with
// the highest SEQUENCE. Later components win ties. Order of first
// appearance is kept.
func latestRevisions(events []vevent) []vevent {
	type revKey struct {
		uid        string
		recurrence int64
		override   bool
	}
	index := make(map[revKey]int, len(events))
	out := make([]vevent, 0, len(events))
	for _, ev := range events {
		k := revKey{uid: ev.UID, override: ev.isOverride()}
		if k.override {
			k.recurrence = ev.Recurrence.UnixNano()
		}
		if i, ok := index[k]; ok {
			if ev.Seq >= out[i].Seq {
				out[i] = ev
			}
			continue
		}
		index[k] = len(out)
		out = append(out, ev)
	}
	return out
}

func expandSeries(ev vevent, overrides []vevent, r Range, maxPerEvent int) ([]model.RawEvent, bool) {
	rule, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		appLog.Warn("ics rrule invalid", "uid", ev.UID, "rrule", ev.RawRRule, "err", err)
		return nil, false
	}
	rule.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	dur := ev.End.Sub(ev.Start)
	// Instances starting before the range may still reach into it.
	from := r.Start.Add(-dur).In(ev.Start.Location())
	to := r.End.In(ev.Start.Location())

	starts := set.Between(from, to, true)
	truncated := false
	if len(starts) > maxPerEvent {
		starts = starts[:maxPerEvent]
		truncated = true
	}

	out := make([]model.RawEvent, 0, len(starts))
	for _, start := range starts {
		id := instanceID(ev, start)
		if o, ok := findOverride(overrides, start); ok {
			if overlaps(o.Start, o.End, r) {
				out = append(out, toRawEvent(o, id, o.Start, o.End))
			}
			continue
		}
		end := start.Add(dur)
		if overlaps(start, end, r) {
			out = append(out, toRawEvent(ev, id, start, end))
		}
	}
	return out, truncated
}

// instanceID mirrors Google's "{eventId}_{start}" instance identifiers.
func instanceID(ev vevent, start time.Time) string {
	if ev.AllDay {
		return ev.UID + "_" + start.Format("20060102")
	}
	return ev.UID + "_" + start.UTC().Format("20060102T150405Z")
}

func findOverride(overrides []vevent, start time.Time) (vevent, bool) {
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.Equal(start) {
			return ov, true
		}
	}
	return vevent{}, false
}

func toRawEvent(ev vevent, id string, start, end time.Time) model.RawEvent {
	raw := model.RawEvent{
		ID:          id,
		Title:       ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
	}
	if ev.AllDay {
		raw.Start = model.OnDate(start.Date())
		raw.End = model.OnDate(end.Date())
	} else {
		raw.Start = model.At(start)
		raw.End = model.At(end)
	}
	return raw
}

// overlaps reports whether [start, end] touches the half-open range r.
// Zero-length events count when start lies inside r.
func overlaps(start, end time.Time, r Range) bool {
	if !start.Before(r.End) {
		return false
	}
	if end.After(start) {
		return end.After(r.Start)
	}
	return !start.Before(r.Start)
}
