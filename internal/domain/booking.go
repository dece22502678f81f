package domain

import (
	"time"

	"github.com/nlukyanov/consultant-booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a client appointment in a consultant's calendar
type Booking struct {
	ID         int64
	CalendarID int64
	ServiceID  int64

	BookingDate time.Time
	StartTime   types.TimeString
	// EndTime может быть NULL у старых записей - такие записи не участвуют
	// в проверке пересечений, их протяжённость неизвестна
	EndTime *types.TimeString

	Status BookingStatus

	ClientName     string
	ClientPhone    string
	ClientEmail    *string
	ClientTelegram *string
	Notes          *string

	// ConfirmationToken opaque token used by the notification collaborator
	// to correlate a messaging-channel identity with this booking
	ConfirmationToken string

	// Denormalized service data, fixed at creation time
	ServiceName     string
	DurationMinutes int

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking occupies its interval for
// conflict checks: pending or confirmed with a known end time
func (b *Booking) IsBlocking() bool {
	if b.EndTime == nil {
		return false
	}
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CountsTowardDailyCap returns true if the booking counts against the
// calendar's max-bookings-per-day limit
func (b *Booking) CountsTowardDailyCap() bool {
	return b.Status != StatusCancelled
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CalendarBookingsFilter фильтр для получения записей календаря
type CalendarBookingsFilter struct {
	CalendarID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и завершённые записи
}
