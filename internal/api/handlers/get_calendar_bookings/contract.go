package get_calendar_bookings

import (
	"context"

	"github.com/nlukyanov/consultant-booking/internal/service/bookings/models"
)

type BookingService interface {
	GetCalendarBookings(ctx context.Context, req *models.GetCalendarBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
