package create_booking

import (
	"errors"
	"net/http"

	"github.com/nlukyanov/consultant-booking/internal/api/handlers"
	createBooking "github.com/nlukyanov/consultant-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgCalendarNotFound   = "календарь не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgDurationMismatch   = "длительность слота не совпадает с длительностью услуги"
	msgInvalidBookingDate = "некорректная дата записи"
	msgOutsideWindow      = "слот выходит за пределы окон доступности"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgDailyLimitReached  = "лимит записей на этот день исчерпан"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: calendar_id=%d, date=%s, time=%s",
				req.CalendarID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDailyLimitReached):
			h.logger.Warn("POST /bookings - Daily limit reached: calendar_id=%d, date=%s",
				req.CalendarID, req.BookingDate)
			handlers.RespondConflict(w, msgDailyLimitReached)

		case errors.Is(err, createBooking.ErrCalendarNotFound):
			h.logger.Warn("POST /bookings - Calendar not found: calendar_id=%d", req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: calendar_id=%d, service_id=%d",
				req.CalendarID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrDurationMismatch):
			h.logger.Warn("POST /bookings - Duration mismatch: calendar_id=%d, service_id=%d",
				req.CalendarID, req.ServiceID)
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: calendar_id=%d, date=%s",
				req.CalendarID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrOutsideWindow):
			h.logger.Warn("POST /bookings - Slot outside windows: calendar_id=%d, date=%s, time=%s",
				req.CalendarID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: calendar_id=%d, date=%s, time=%s",
				req.CalendarID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: calendar_id=%d, service_id=%d, error=%v",
				req.CalendarID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, calendar_id=%d, service_id=%d",
		result.ID, req.CalendarID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
