package confirm_booking

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
	msgInvalidBookingID    = "некорректный ID записи"
	msgNotFound            = "запись не найдена"
	msgMissingConsultantID = "отсутствует ID консультанта"
	msgForbidden           = "доступ запрещен"
	msgCannotConfirm       = "запись нельзя подтвердить из текущего статуса"
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

// Handle PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	consultantID, ok := middleware.GetConsultantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Missing consultant ID")
		handlers.RespondUnauthorized(w, msgMissingConsultantID)
		return
	}

	if err := h.service.Confirm(r.Context(), bookingID, consultantID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied), errors.Is(err, bookings.ErrCalendarNotFound):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Access denied: booking_id=%d, consultant_id=%d",
				bookingID, consultantID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotConfirm)

		default:
			h.logger.Error("PATCH /bookings/{id}/confirm - Failed to confirm booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/confirm - Booking confirmed successfully: booking_id=%d, consultant_id=%d",
		bookingID, consultantID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}
