package source

import (
	"context"
	"fmt"

	"monthcal/internal/model"
)

// ICSProvider reads an ICS subscription and expands its recurrences locally.
type ICSProvider struct {
	fetcher     *Fetcher
	feed        Feed
	ref         model.CalendarRef
	maxPerEvent int
}

func NewICSProvider(fetcher *Fetcher, url string, ref model.CalendarRef, maxPerEvent int) *ICSProvider {
	return &ICSProvider{
		fetcher:     fetcher,
		feed:        Feed{ID: ref.ID, URL: url},
		ref:         ref,
		maxPerEvent: maxPerEvent,
	}
}

func (p *ICSProvider) Name() string {
	return "ics:" + p.ref.ID
}

func (p *ICSProvider) CalendarRef() model.CalendarRef {
	return p.ref
}

func (p *ICSProvider) Fetch(ctx context.Context, r Range) ([]model.RawEvent, error) {
	res, err := p.fetcher.FetchOne(ctx, p.feed)
	if err != nil {
		return nil, fmt.Errorf("source: ics fetch: %w", err)
	}
	parsed, err := parseICS(p.feed, res.Body)
	if err != nil {
		return nil, fmt.Errorf("source: ics parse %s: %w", redactURL(p.feed.URL), err)
	}
	return expandICS(parsed, r, p.maxPerEvent), nil
}
