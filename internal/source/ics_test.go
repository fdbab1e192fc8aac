package source

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/model"
)

const testICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//monthcal//test//EN
BEGIN:VEVENT
UID:single@test
DTSTART:20240310T140000Z
DTEND:20240310T150000Z
SUMMARY:Dentist
LOCATION:Main St
DESCRIPTION:Yearly checkup
END:VEVENT
BEGIN:VEVENT
UID:madrid@test
DTSTART;TZID=Europe/Madrid:20240312T100000
DTEND;TZID=Europe/Madrid:20240312T110000
SUMMARY:Call
END:VEVENT
BEGIN:VEVENT
UID:holiday@test
DTSTART;VALUE=DATE:20240330
DTEND;VALUE=DATE:20240401
SUMMARY:Easter
END:VEVENT
BEGIN:VEVENT
UID:weekly@test
DTSTART:20240304T090000Z
DTEND:20240304T093000Z
RRULE:FREQ=WEEKLY;COUNT=4
EXDATE:20240311T090000Z
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:weekly@test
RECURRENCE-ID:20240318T090000Z
DTSTART:20240318T110000Z
DTEND:20240318T113000Z
SUMMARY:Standup (moved)
END:VEVENT
BEGIN:VEVENT
UID:old@test
DTSTART:20230110T090000Z
DTEND:20230110T100000Z
SUMMARY:Last year
END:VEVENT
BEGIN:VEVENT
SUMMARY:No uid
DTSTART:20240301T090000Z
END:VEVENT
END:VCALENDAR
`

func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

func byID(events []model.RawEvent) map[string]model.RawEvent {
	out := make(map[string]model.RawEvent, len(events))
	for _, ev := range events {
		out[ev.ID] = ev
	}
	return out
}

func TestParseAndExpandICS(t *testing.T) {
	parsed, err := parseICS(Feed{ID: "team"}, crlf(testICS))
	require.NoError(t, err)
	assert.Len(t, parsed, 6, "event without UID is skipped")

	march := RangeAround(model.YearMonth{Year: 2024, Month: time.March}, 0, 0, time.UTC)
	events := byID(expandICS(parsed, march, 0))
	require.Len(t, events, 6)

	single := events["single@test"]
	assert.Equal(t, "Dentist", single.Title)
	assert.Equal(t, "Main St", single.Location)
	assert.Equal(t, "Yearly checkup", single.Description)
	assert.False(t, single.Start.DateOnly)
	assert.True(t, single.Start.Time.Equal(time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)))

	call := events["madrid@test"]
	assert.True(t, call.Start.Time.Equal(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)))

	holiday := events["holiday@test"]
	assert.Equal(t, model.OnDate(2024, time.March, 30), holiday.Start)
	assert.Equal(t, model.OnDate(2024, time.April, 1), holiday.End)

	_, skipped := events["weekly@test_20240311T090000Z"]
	assert.False(t, skipped, "EXDATE removes the instance")

	first := events["weekly@test_20240304T090000Z"]
	assert.Equal(t, "Standup", first.Title)
	assert.True(t, first.End.Time.Equal(time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)))

	moved := events["weekly@test_20240318T090000Z"]
	assert.Equal(t, "Standup (moved)", moved.Title)
	assert.True(t, moved.Start.Time.Equal(time.Date(2024, 3, 18, 11, 0, 0, 0, time.UTC)))

	assert.Contains(t, events, "weekly@test_20240325T090000Z")
	assert.NotContains(t, events, "old@test")
}

func TestExpandICSCapsOccurrences(t *testing.T) {
	daily := []vevent{{
		UID:      "daily@test",
		Summary:  "Pills",
		Start:    time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 1, 8, 5, 0, 0, time.UTC),
		RawRRule: "FREQ=DAILY",
	}}
	r := Range{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	assert.Len(t, expandICS(daily, r, 5), 5)
	assert.Len(t, expandICS(daily, r, 0), 366)
}

func TestExpandICSAllDaySeries(t *testing.T) {
	yearly := []vevent{{
		UID:      "bday@test",
		Summary:  "Birthday",
		AllDay:   true,
		Start:    time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2020, 3, 16, 0, 0, 0, 0, time.UTC),
		RawRRule: "FREQ=YEARLY",
	}}
	r := RangeAround(model.YearMonth{Year: 2024, Month: time.March}, 0, 0, time.UTC)

	out := expandICS(yearly, r, 0)
	require.Len(t, out, 1)
	assert.Equal(t, "bday@test_20240315", out[0].ID)
	assert.Equal(t, model.OnDate(2024, time.March, 15), out[0].Start)
	assert.Equal(t, model.OnDate(2024, time.March, 16), out[0].End)
}

func TestParseICSRejectsEmptyBody(t *testing.T) {
	_, err := parseICS(Feed{ID: "x"}, nil)
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	r := Range{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}
	at := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

	assert.True(t, overlaps(at(2, 28), at(3, 2), r))
	assert.False(t, overlaps(at(2, 28), at(3, 1), r), "ends exactly at range start")
	assert.True(t, overlaps(at(3, 1), at(3, 1), r), "zero-length at start")
	assert.False(t, overlaps(at(4, 1), at(4, 2), r))
}

func TestExpandICSKeepsHighestSequence(t *testing.T) {
	body := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//monthcal//test//EN
BEGIN:VEVENT
UID:review@test
SEQUENCE:2
DTSTART:20240305T150000Z
DTEND:20240305T160000Z
SUMMARY:Review (rescheduled)
END:VEVENT
BEGIN:VEVENT
UID:review@test
SEQUENCE:1
DTSTART:20240304T150000Z
DTEND:20240304T160000Z
SUMMARY:Review
END:VEVENT
END:VCALENDAR
`
	parsed, err := parseICS(Feed{ID: "team"}, crlf(body))
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	r := RangeAround(model.YearMonth{Year: 2024, Month: time.March}, 0, 0, time.UTC)
	out := expandICS(parsed, r, 0)
	require.Len(t, out, 1)
	assert.Equal(t, "Review (rescheduled)", out[0].Title)
	assert.True(t, out[0].Start.Time.Equal(time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)))
}
