package layout

import (
	"sort"
	"strconv"
	"strings"

	"monthcal/internal/model"
)

// BucketByDay groups entries by day of month and orders each bucket with
// SortDay.
func BucketByDay(entries []model.DisplayEntry) map[int][]model.DisplayEntry {
	days := make(map[int][]model.DisplayEntry)
	for _, e := range entries {
		days[e.Day] = append(days[e.Day], e)
	}
	for _, bucket := range days {
		SortDay(bucket)
	}
	return days
}

// SortDay orders a day's entries in place: all-day entries first, then timed
// entries by minute of day. The sort is stable, so ties keep input order.
func SortDay(entries []model.DisplayEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return rank(entries[i]) < rank(entries[j])
	})
}

// rank maps an entry to its sort key; all-day entries share -1.
func rank(e model.DisplayEntry) int {
	if e.IsAllDay() {
		return -1
	}
	m, ok := minuteOfDay(e.Time)
	if !ok {
		// Unparseable times go last.
		return 24 * 60
	}
	return m
}

func minuteOfDay(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hour*60 + minute, true
}
