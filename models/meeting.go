package models

import "time"

// BookingRequest is the form payload coming from the scheduling page into
// /gmeet-api/create-meeting.
type BookingRequest struct {
	SelectedDate string `form:"selectedDate"` // "dd/MM/yyyy"
	Timetable    string `form:"timetable"`    // "HH:mm", one of the fixed slot starts
	Email        string `form:"email"`        // invitee address
	Message      string `form:"message"`      // free-text meeting description
}

// TimeSlot is a fixed-length bookable interval anchored at one of the fixed
// civil start times, resolved to absolute instants for a concrete date.
type TimeSlot struct {
	Label string    `json:"label"` // "HH:mm" in the civil timezone
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyInterval is a time range already occupied by an existing calendar event.
// Both bounds are absolute instants; Start is inclusive, End exclusive.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the interval [start, end) intersects this busy range.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// AvailableSlotsResponse is the payload returned by /gmeet-api/available-slots.
type AvailableSlotsResponse struct {
	AvailableSlots []string `json:"availableSlots"`
}
