package get_booking_by_token

import (
	"context"

	"github.com/nlukyanov/consultant-booking/internal/service/bookings/models"
)

type BookingService interface {
	GetByToken(ctx context.Context, token string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
