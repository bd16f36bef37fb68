package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	"meetbridge/models"
	"meetbridge/services/auth"
)

// SchedulingService is the availability engine exposed to the HTTP handlers.
type SchedulingService interface {
	// AvailableSlots returns the free slot labels ("HH:mm") for a
	// "dd/MM/yyyy" date.
	AvailableSlots(ctx context.Context, date string) ([]string, error)

	// CreateMeeting validates the booking and inserts the calendar event,
	// returning the remote representation of the created event.
	CreateMeeting(ctx context.Context, req models.BookingRequest) (*gcal.Event, error)
}

// EventsAPI is the slice of the remote calendar backend this service consumes.
type EventsAPI interface {
	List(ctx context.Context, token, calendarID string, timeMin, timeMax time.Time) ([]*gcal.Event, error)
	Insert(ctx context.Context, token, calendarID string, event *gcal.Event) (*gcal.Event, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Broker     auth.CredentialBroker
	Events     EventsAPI
	CalendarID string
	Logger     *zap.Logger
}
