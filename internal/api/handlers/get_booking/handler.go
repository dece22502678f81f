package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nlukyanov/consultant-booking/internal/api/handlers"
	"github.com/nlukyanov/consultant-booking/internal/api/middleware"
	"github.com/nlukyanov/consultant-booking/internal/service/bookings"
)

const (
	msgInvalidBookingID     = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgMissingConsultantID  = "отсутствует ID консультанта"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	consultantID, ok := middleware.GetConsultantID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing consultant ID")
		handlers.RespondUnauthorized(w, msgMissingConsultantID)
		return
	}

	// Сервис сам проверит права доступа через владение календарём
	booking, err := h.service.GetByID(r.Context(), bookingID, consultantID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, consultant_id=%d",
				bookingID, consultantID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%d, consultant_id=%d",
		bookingID, consultantID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
