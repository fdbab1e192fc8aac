package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/model"
)

func TestCalendarsFirstSeenOrder(t *testing.T) {
	events := []model.RawEvent{
		{ID: "1", CalendarID: "work"},
		{ID: "2"},
		{ID: "3", CalendarID: "home", CalendarName: "Home"},
		{ID: "4", CalendarID: "work", CalendarName: "Work"},
		{ID: "5", CalendarID: "gym", CalendarName: "Gym"},
		{ID: "6", CalendarID: "club", CalendarName: "Club"},
	}
	cals := Calendars(events)
	assert.Equal(t, []model.CalendarRef{
		{ID: "work", Name: "Work"},
		{ID: "home", Name: "Home"},
		{ID: "gym", Name: "Gym"},
		{ID: "club", Name: "Club"},
	}, cals)

	choices := FilterChoices(cals, 3)
	assert.Len(t, choices, 3)
	assert.Equal(t, "gym", choices[2].ID)
	assert.Len(t, FilterChoices(cals[:2], 3), 2)

	// Calendars past the third remain filterable.
	m := Build([]model.RawEvent{{
		ID: "6", CalendarID: "club",
		Start: model.OnDate(2024, time.March, 2), End: model.OnDate(2024, time.March, 3),
	}}, march2024, OnlyCalendar("club"), time.UTC)
	assert.Equal(t, 1, m.Count())
}

func TestCalendarFilterID(t *testing.T) {
	_, active := AllCalendars().ID()
	assert.False(t, active)

	id, active := OnlyCalendar("work").ID()
	assert.True(t, active)
	assert.Equal(t, "work", id)
}

func TestBuildMonth(t *testing.T) {
	events := []model.RawEvent{
		{ID: "a", Title: "Dinner", Start: model.At(time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)), End: model.At(time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC))},
		{ID: "b", Title: "Holiday", Start: model.OnDate(2024, time.March, 4), End: model.OnDate(2024, time.March, 5)},
	}
	m := Build(events, march2024, AllCalendars(), time.UTC)
	assert.Equal(t, march2024, m.Window)
	require.Len(t, m.Entries(4), 2)
	assert.Equal(t, "b", m.Entries(4)[0].SourceEventID)

	e, ok := m.Find("a", 4)
	require.True(t, ok)
	assert.Equal(t, "Dinner", e.Title)
	_, ok = m.Find("a", 5)
	assert.False(t, ok)
}

func TestGrid(t *testing.T) {
	// March 2024 starts on a Friday.
	today := model.Date{Year: 2024, Month: time.March, Day: 15}

	rows := Grid(march2024, time.Monday, today)
	require.Len(t, rows, 5)
	for i := 0; i < 4; i++ {
		assert.True(t, rows[0][i].Blank)
	}
	assert.Equal(t, 1, rows[0][4].Day)
	assert.True(t, rows[2][4].IsToday)
	assert.Equal(t, 15, rows[2][4].Day)

	rows = Grid(march2024, time.Sunday, today)
	require.Len(t, rows, 6)
	assert.Equal(t, 1, rows[0][5].Day)
	assert.Equal(t, 31, rows[5][0].Day)
	assert.True(t, rows[5][1].Blank)

	rows = Grid(april2024, time.Monday, today)
	for _, row := range rows {
		for _, c := range row {
			assert.False(t, c.IsToday)
		}
	}
}

func TestWeekdays(t *testing.T) {
	assert.Equal(t, time.Monday, Weekdays(time.Monday)[0])
	assert.Equal(t, time.Sunday, Weekdays(time.Monday)[6])
	assert.Equal(t, time.Saturday, Weekdays(time.Sunday)[6])
}
