package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const civilDateLayout = "02/01/2006"

// ErrInvalidDate signals an unparseable client-supplied date or time.
var ErrInvalidDate = errors.New("invalid date")

// AvailableSlots computes the free slots for the given civil date. The token
// must be issued before the calendar call; an issuance failure short-circuits
// the request instead of attempting an unauthenticated call.
func (s *DefaultSchedulingService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	day, err := time.ParseInLocation(civilDateLayout, date, zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a dd/MM/yyyy date", ErrInvalidDate, date)
	}

	token, err := s.Broker.IssueToken(ctx)
	if err != nil {
		return nil, err
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	events, err := s.Events.List(ctx, token, s.CalendarID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	busy := busyIntervals(events, s.Logger)
	return FilterAvailable(GenerateSlots(day), busy), nil
}
