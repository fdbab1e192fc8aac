package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/model"
)

func TestAPIProviderFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","summary":"Yoga","start":{"dateTime":"2024-03-05T18:00:00Z"},"end":{"dateTime":"2024-03-05T19:00:00Z"},"calendarId":"gym","calendarName":"Gym"},
			{"id":"2","summary":"Holiday","description":"Office closed","start":{"date":"2024-03-19"},"end":{"date":"2024-03-20"}}
		]`))
	}))
	defer server.Close()

	p := NewAPIProvider(NewFetcher(t.TempDir()), server.URL+"/", model.CalendarRef{ID: "shop", Name: "Shop"})
	assert.Equal(t, "api:shop", p.Name())

	events, err := p.Fetch(context.Background(), Range{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "gym", events[0].CalendarID)
	assert.Equal(t, "Gym", events[0].CalendarName)
	assert.True(t, events[0].Start.Time.Equal(time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)))

	assert.Empty(t, events[1].CalendarID, "stamping is left to the store")
	assert.Equal(t, "Office closed", events[1].Description)
	assert.Equal(t, model.OnDate(2024, time.March, 19), events[1].Start)
}

func TestAPIProviderDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	p := NewAPIProvider(NewFetcher(t.TempDir()), server.URL, model.CalendarRef{ID: "shop"})
	_, err := p.Fetch(context.Background(), Range{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source: api decode")
}
