// Package source fetches raw events from calendar backends (Google Calendar,
// ICS subscriptions and JSON event feeds) and keeps the latest snapshot.
package source

import (
	"context"
	"fmt"
	"time"

	"monthcal/internal/config"
	"monthcal/internal/model"
)

// Range is the half-open interval [Start, End) providers are asked for.
type Range struct {
	Start time.Time
	End   time.Time
}

// RangeAround returns the range covering back months before and ahead months
// after the month of today, in loc.
func RangeAround(today model.YearMonth, back, ahead int, loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(today.Year, today.Month, 1, 0, 0, 0, 0, loc)
	return Range{
		Start: first.AddDate(0, -back, 0),
		End:   first.AddDate(0, ahead+1, 0),
	}
}

// Provider is one calendar backend.
type Provider interface {
	// Name identifies the provider in logs and status output.
	Name() string
	// Fetch returns the provider's events overlapping r.
	Fetch(ctx context.Context, r Range) ([]model.RawEvent, error)
}

// Calendar is implemented by providers bound to a single calendar. The store
// stamps events lacking calendar metadata with these values.
type Calendar interface {
	CalendarRef() model.CalendarRef
}

// FromConfig builds one provider per configured source.
func FromConfig(ctx context.Context, cfg *config.Config) ([]Provider, error) {
	providers := make([]Provider, 0, len(cfg.Sources))
	fetcher := NewFetcher(cfg.CacheDir)

	for _, sc := range cfg.Sources {
		ref := model.CalendarRef{ID: sc.ID, Name: sc.Name}
		if ref.Name == "" {
			ref.Name = sc.ID
		}

		switch sc.Kind {
		case config.KindGoogle:
			p, err := NewGoogleProvider(ctx, GoogleOptions{
				CalendarID:      sc.CalendarID,
				CredentialsFile: sc.CredentialsFile,
				CredentialsJSON: cfg.GoogleCredentials,
				Ref:             ref,
			})
			if err != nil {
				return nil, fmt.Errorf("source: %s: %w", sc.ID, err)
			}
			providers = append(providers, p)
		case config.KindICS:
			providers = append(providers, NewICSProvider(fetcher, sc.URL, ref, cfg.MaxOccurrencesPerEvent))
		case config.KindAPI:
			providers = append(providers, NewAPIProvider(fetcher, sc.URL, ref))
		default:
			return nil, fmt.Errorf("source: %s: unknown kind %q", sc.ID, sc.Kind)
		}
	}
	return providers, nil
}
