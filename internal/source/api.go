package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"monthcal/internal/model"
)

// apiEvent is the Google-shaped event served by an events API.
type apiEvent struct {
	ID           string      `json:"id"`
	Summary      string      `json:"summary"`
	Description  string      `json:"description,omitempty"`
	Location     string      `json:"location,omitempty"`
	Start        apiDateTime `json:"start"`
	End          apiDateTime `json:"end"`
	CalendarID   string      `json:"calendarId,omitempty"`
	CalendarName string      `json:"calendarName,omitempty"`
}

type apiDateTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
}

// APIProvider reads a JSON array of events from GET {base}/calendar. The
// feed is not range-aware: every event it returns is kept.
type APIProvider struct {
	fetcher *Fetcher
	url     string
	ref     model.CalendarRef
}

// NewAPIProvider returns a provider for the events API rooted at base.
func NewAPIProvider(fetcher *Fetcher, base string, ref model.CalendarRef) *APIProvider {
	return &APIProvider{
		fetcher: fetcher,
		url:     strings.TrimRight(base, "/") + "/calendar",
		ref:     ref,
	}
}

func (p *APIProvider) Name() string {
	return "api:" + p.ref.ID
}

func (p *APIProvider) CalendarRef() model.CalendarRef {
	return p.ref
}

func (p *APIProvider) Fetch(ctx context.Context, _ Range) ([]model.RawEvent, error) {
	res, err := p.fetcher.FetchOne(ctx, Feed{ID: p.ref.ID, URL: p.url})
	if err != nil {
		return nil, fmt.Errorf("source: api fetch: %w", err)
	}

	var items []apiEvent
	if err := json.Unmarshal(res.Body, &items); err != nil {
		return nil, fmt.Errorf("source: api decode %s: %w", redactURL(p.url), err)
	}

	out := make([]model.RawEvent, 0, len(items))
	for _, it := range items {
		out = append(out, model.RawEvent{
			ID:           it.ID,
			Title:        it.Summary,
			Description:  it.Description,
			Location:     it.Location,
			Start:        parseWhen(it.Start.Date, it.Start.DateTime),
			End:          parseWhen(it.End.Date, it.End.DateTime),
			CalendarID:   it.CalendarID,
			CalendarName: it.CalendarName,
		})
	}
	return out, nil
}
