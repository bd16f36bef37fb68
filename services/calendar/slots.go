package calendar

import (
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	"meetbridge/models"
)

// ZoneName is the civil timezone all slots are defined in.
const ZoneName = "Europe/Paris"

// SlotLength is the fixed meeting duration.
const SlotLength = 20 * time.Minute

// slotStarts is the single source of candidate start times, shared by slot
// generation and booking validation. Order matters: it is the output order.
var slotStarts = []string{"08:00", "08:20", "08:40", "09:00", "09:20", "09:40"}

var zone = mustLoadZone()

func mustLoadZone() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		panic("calendar: load timezone " + ZoneName + ": " + err.Error())
	}
	return loc
}

// GenerateSlots returns the candidate slots for the civil date of day,
// ascending, each resolved to absolute instants with the DST offset that
// applies on that date.
func GenerateSlots(day time.Time) []models.TimeSlot {
	year, month, dayOfMonth := day.In(zone).Date()

	slots := make([]models.TimeSlot, 0, len(slotStarts))
	for _, label := range slotStarts {
		hhmm, err := time.Parse("15:04", label)
		if err != nil {
			// slotStarts is a compile-time list; a bad entry is a programming error.
			panic("calendar: invalid slot label " + label)
		}
		start := time.Date(year, month, dayOfMonth, hhmm.Hour(), hhmm.Minute(), 0, 0, zone)
		slots = append(slots, models.TimeSlot{
			Label: label,
			Start: start,
			End:   start.Add(SlotLength),
		})
	}
	return slots
}

// IsCandidateSlot reports whether hhmm is one of the fixed slot start times.
func IsCandidateSlot(hhmm string) bool {
	for _, label := range slotStarts {
		if label == hhmm {
			return true
		}
	}
	return false
}

// FilterAvailable keeps the slots that overlap no busy interval and returns
// their labels in candidate order.
func FilterAvailable(slots []models.TimeSlot, busy []models.BusyInterval) []string {
	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		conflict := false
		for _, b := range busy {
			if b.Overlaps(slot.Start, slot.End) {
				conflict = true
				break
			}
		}
		if !conflict {
			available = append(available, slot.Label)
		}
	}
	return available
}

// busyIntervals converts remote events into typed busy intervals. Events
// missing a parseable start or end cannot conflict with anything; they are
// skipped with a data-quality warning instead of being compared as zero times.
func busyIntervals(events []*gcal.Event, logger *zap.Logger) []models.BusyInterval {
	intervals := make([]models.BusyInterval, 0, len(events))
	for _, event := range events {
		start, okStart := eventInstant(event.Start)
		end, okEnd := eventInstant(event.End)
		if !okStart || !okEnd {
			logger.Warn("skipping event without usable start/end",
				zap.String("eventId", event.Id),
				zap.String("summary", event.Summary))
			continue
		}
		intervals = append(intervals, models.BusyInterval{Start: start, End: end})
	}
	return intervals
}

func eventInstant(edt *gcal.EventDateTime) (time.Time, bool) {
	if edt == nil || edt.DateTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, edt.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
