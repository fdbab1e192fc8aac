package capture

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/model"
)

func TestPageURL(t *testing.T) {
	march := model.YearMonth{Year: 2024, Month: time.March}

	assert.Equal(t, "http://127.0.0.1:8080/calendar", PageURL(":8080", model.YearMonth{}, ""))
	assert.Equal(t, "http://localhost:9000/calendar?calendar=team&month=3&year=2024",
		PageURL("localhost:9000", march, "team"))
	assert.Equal(t, "https://cal.example.com/calendar?month=3&year=2024",
		PageURL("https://cal.example.com/", march, ""))
}

func TestCalendarPNGValidatesOptions(t *testing.T) {
	err := CalendarPNG(context.Background(), Options{OutputPath: "x.png"})
	assert.EqualError(t, err, "capture: URL is required")

	err = CalendarPNG(context.Background(), Options{URL: "http://localhost/calendar"})
	assert.EqualError(t, err, "capture: OutputPath is required")
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{URL: "u", OutputPath: "p"}
	assert.NoError(t, o.normalize())
	assert.Equal(t, DefaultWidth, o.Width)
	assert.Equal(t, DefaultHeight, o.Height)
	assert.Equal(t, 30*time.Second, o.Timeout)
}

func TestHeadersCarryBasicAuth(t *testing.T) {
	assert.Empty(t, Options{}.Headers())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "s3cret" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`<main data-ready="true"></main>`))
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/calendar", nil)
	require.NoError(t, err)
	for k, v := range (Options{Username: "admin", Password: "s3cret"}).Headers() {
		req.Header.Set(k, fmt.Sprint(v))
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
