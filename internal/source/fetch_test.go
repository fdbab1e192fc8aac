package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherConditionalRequestsAndFallback(t *testing.T) {
	var hits atomic.Int32
	var broken atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if broken.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte("BEGIN:VCALENDAR"))
	}))
	defer server.Close()

	f := NewFetcher(t.TempDir())
	feed := Feed{ID: "team", URL: server.URL + "/private/abc.ics"}
	ctx := context.Background()

	res, err := f.FetchOne(ctx, feed)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, "BEGIN:VCALENDAR", string(res.Body))

	res, err = f.FetchOne(ctx, feed)
	require.NoError(t, err)
	assert.True(t, res.FromCache, "304 is served from disk")
	assert.Equal(t, "BEGIN:VCALENDAR", string(res.Body))

	broken.Store(true)
	res, err = f.FetchOne(ctx, feed)
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetcherErrorWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(t.TempDir())
	_, err := f.FetchOne(context.Background(), Feed{ID: "x", URL: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = f.FetchOne(context.Background(), Feed{ID: "x"})
	assert.Error(t, err)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://calendar.example.com/...(redacted)",
		redactURL("https://calendar.example.com/private-abc/basic.ics?token=secret"))
	assert.Equal(t, "...(redacted)", redactURL("not a url"))
}
