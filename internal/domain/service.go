package domain

import "time"

// Service represents a bookable service offered by a consultant
type Service struct {
	ID           int64
	ConsultantID int64
	// CalendarID может быть NULL - услуга без привязки к конкретному календарю
	CalendarID *int64

	Name            string
	Description     string
	DurationMinutes int
	Price           *float64
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableOn returns true if the service can be booked into the calendar:
// active, positive duration, same consultant, and either unbound or bound
// to this calendar
func (s *Service) AvailableOn(calendar *Calendar) bool {
	if !s.IsActive || s.DurationMinutes <= 0 {
		return false
	}
	if s.ConsultantID != calendar.ConsultantID {
		return false
	}
	if s.CalendarID != nil && *s.CalendarID != calendar.ID {
		return false
	}
	return true
}
