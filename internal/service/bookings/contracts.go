package bookings

import (
	"context"

	"github.com/nlukyanov/consultant-booking/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	GetByCalendarWithFilter(ctx context.Context, filter domain.CalendarBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetCalendar(ctx context.Context, id int64) (*domain.Calendar, error)
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
