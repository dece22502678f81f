package get_booking_by_token

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nlukyanov/consultant-booking/internal/api/handlers"
	"github.com/nlukyanov/consultant-booking/internal/service/bookings"
)

const (
	msgMissingToken = "токен обязателен"
	msgNotFound     = "запись не найдена"
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

// Handle GET /api/v1/bookings/by-token/{token}
// Публичный маршрут: токен выдаётся клиенту при создании записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token := vars["token"]
	if token == "" {
		h.logger.Warn("GET /bookings/by-token/{token} - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	booking, err := h.service.GetByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/by-token/{token} - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/by-token/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingToken)

		default:
			h.logger.Error("GET /bookings/by-token/{token} - Failed to get booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/by-token/{token} - Booking retrieved successfully: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
