package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleEventsClient talks to the Google Calendar API with a bearer token
// issued by the credential broker. A fresh service is built per call because
// the token is request-scoped.
type GoogleEventsClient struct{}

func (GoogleEventsClient) List(ctx context.Context, token, calendarID string, timeMin, timeMax time.Time) ([]*gcal.Event, error) {
	svc, err := newService(ctx, token)
	if err != nil {
		return nil, err
	}

	events, err := svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return events.Items, nil
}

func (GoogleEventsClient) Insert(ctx context.Context, token, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	svc, err := newService(ctx, token)
	if err != nil {
		return nil, err
	}

	// ConferenceDataVersion(1) is required or the Meet create request is ignored.
	return svc.Events.Insert(calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
}

func newService(ctx context.Context, token string) (*gcal.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	svc, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return svc, nil
}
