package domain

import (
	"time"

	"github.com/nlukyanov/consultant-booking/pkg/types"
)

// AvailabilityWindow represents a recurring weekly time range during which
// a calendar accepts bookings. Multiple windows per day are allowed, may be
// non-contiguous and are not guaranteed non-overlapping in storage
type AvailabilityWindow struct {
	ID         int64
	CalendarID int64

	// DayOfWeek 0=понедельник .. 6=воскресенье
	DayOfWeek int

	StartTime types.TimeString
	EndTime   types.TimeString

	IsAvailable bool

	CreatedAt time.Time
}

// LengthMinutes returns the window length in minutes
func (w *AvailabilityWindow) LengthMinutes() (int, error) {
	return w.StartTime.MinutesUntil(w.EndTime)
}

// Contains returns true if the [start, end) interval lies fully inside
// the window
func (w *AvailabilityWindow) Contains(start, end types.TimeString) bool {
	ws, err := w.StartTime.Minutes()
	if err != nil {
		return false
	}
	we, err := w.EndTime.Minutes()
	if err != nil {
		return false
	}
	s, err := start.Minutes()
	if err != nil {
		return false
	}
	e, err := end.Minutes()
	if err != nil {
		return false
	}
	return ws <= s && e <= we
}

// WeekdayIndex converts a date's weekday to the 0=Monday..6=Sunday
// convention used by availability windows
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
