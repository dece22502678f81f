package get_available_slots

import (
	"context"
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	// GetByCalendarAndDate получает записи календаря на конкретную дату
	GetByCalendarAndDate(ctx context.Context, calendarID int64, date time.Time, includeInactive bool) ([]*domain.Booking, error)

	// CountActiveByCalendarAndDate считает неотменённые записи на дату
	CountActiveByCalendarAndDate(ctx context.Context, calendarID int64, date time.Time) (int, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetCalendar(ctx context.Context, id int64) (*domain.Calendar, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetWindows(ctx context.Context, calendarID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
