package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	"meetbridge/models"
)

// ErrInvalidTimeSlot signals a booking time outside the fixed candidate list.
var ErrInvalidTimeSlot = errors.New("no correct time slot selected")

// reminderLeadMinutes is how long before the meeting the email reminder fires.
const reminderLeadMinutes = 30

// CreateMeeting validates the booking request and inserts the corresponding
// event into the configured calendar. Validation happens before any remote
// work: an unknown time slot never costs a token exchange.
func (s *DefaultSchedulingService) CreateMeeting(ctx context.Context, req models.BookingRequest) (*gcal.Event, error) {
	if !IsCandidateSlot(req.Timetable) {
		return nil, ErrInvalidTimeSlot
	}

	start, err := time.ParseInLocation(civilDateLayout+" 15:04", req.SelectedDate+" "+req.Timetable, zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a dd/MM/yyyy date", ErrInvalidDate, req.SelectedDate)
	}

	event := NewMeetingEvent(req, start, start.Add(SlotLength))

	token, err := s.Broker.IssueToken(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.Events.Insert(ctx, token, s.CalendarID, event)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	s.Logger.Info("meeting created",
		zap.String("eventId", created.Id),
		zap.String("start", event.Start.DateTime),
		zap.String("invitee", req.Email))
	return created, nil
}

// NewMeetingEvent builds the outbound calendar event for a booking: a
// 20-minute call with a Meet conference attached and a single email reminder.
func NewMeetingEvent(req models.BookingRequest, start, end time.Time) *gcal.Event {
	return &gcal.Event{
		Summary:     fmt.Sprintf("Call with %s", req.Email),
		Description: req.Message,
		Start: &gcal.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: uuid.New().String(),
			},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: reminderLeadMinutes},
			},
			// UseDefault=false is omitted from JSON unless forced.
			ForceSendFields: []string{"UseDefault"},
		},
	}
}
