package domain

import "time"

// Calendar represents a named booking surface owned by one consultant
// Policy fields control how slots are generated and bookings admitted
type Calendar struct {
	ID           int64
	ConsultantID int64
	Name         string
	Color        string
	IsActive     bool

	// BreakBetweenBookingsMinutes minimum gap between the end of one
	// booking and the start of the next
	BreakBetweenBookingsMinutes int

	// BookAheadHours minimum notice between "now" and a booking's start
	BookAheadHours int

	// MaxBookingsPerDay limit of non-cancelled bookings per date, 0 = unlimited
	MaxBookingsPerDay int

	// Reminder lead times consumed by the notification collaborator
	ReminderFirstHours  int
	ReminderSecondHours int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDailyCap returns true if the calendar limits bookings per day
func (c *Calendar) HasDailyCap() bool {
	return c.MaxBookingsPerDay > 0
}
