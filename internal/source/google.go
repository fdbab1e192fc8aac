package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

// GoogleOptions configures a GoogleProvider.
type GoogleOptions struct {
	CalendarID string
	// CredentialsFile is a service-account JSON key path. It takes
	// precedence over CredentialsJSON.
	CredentialsFile string
	CredentialsJSON string
	Ref             model.CalendarRef
}

// GoogleProvider reads events from the Google Calendar API v3 with
// recurring events expanded server-side.
type GoogleProvider struct {
	service    *calendar.Service
	calendarID string
	ref        model.CalendarRef
}

// NewGoogleProvider authenticates with a service account and builds the
// Calendar API client.
func NewGoogleProvider(ctx context.Context, opts GoogleOptions) (*GoogleProvider, error) {
	credentialsJSON := []byte(opts.CredentialsJSON)
	if opts.CredentialsFile != "" {
		data, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("google credentials: %w", err)
		}
		credentialsJSON = data
	}
	if len(credentialsJSON) == 0 {
		return nil, errors.New("google credentials: none configured (credentials_file or GOOGLE_CREDENTIALS)")
	}

	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("google credentials: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("google calendar service: %w", err)
	}
	return NewGoogleProviderWithService(service, opts.CalendarID, opts.Ref), nil
}

// NewGoogleProviderWithService wraps an existing Calendar API client.
func NewGoogleProviderWithService(service *calendar.Service, calendarID string, ref model.CalendarRef) *GoogleProvider {
	return &GoogleProvider{service: service, calendarID: calendarID, ref: ref}
}

func (p *GoogleProvider) Name() string {
	return "google:" + p.ref.ID
}

func (p *GoogleProvider) CalendarRef() model.CalendarRef {
	return p.ref
}

// Fetch lists every event instance overlapping r, following pagination.
func (p *GoogleProvider) Fetch(ctx context.Context, r Range) ([]model.RawEvent, error) {
	out := make([]model.RawEvent, 0)

	call := p.service.Events.List(p.calendarID).
		TimeMin(r.Start.Format(time.RFC3339)).
		TimeMax(r.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250)

	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			if item.Status == "cancelled" {
				continue
			}
			out = append(out, convertGoogleEvent(item))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: google list events: %w", err)
	}

	appLog.Debug("google fetch completed", "calendar", p.ref.ID, "event_count", len(out))
	return out, nil
}

func convertGoogleEvent(item *calendar.Event) model.RawEvent {
	ev := model.RawEvent{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}
	if item.Start != nil {
		ev.Start = parseWhen(item.Start.Date, item.Start.DateTime)
	}
	if item.End != nil {
		ev.End = parseWhen(item.End.Date, item.End.DateTime)
	}
	return ev
}
