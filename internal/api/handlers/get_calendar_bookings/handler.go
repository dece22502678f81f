package get_calendar_bookings

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
	msgInvalidCalendarID   = "некорректный ID календаря"
	msgMissingConsultantID = "отсутствует ID консультанта"
	msgInvalidParams       = "некорректные параметры запроса"
	msgCalendarNotFound    = "календарь не найден"
	msgForbidden           = "доступ запрещен"
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

// Handle GET /api/v1/calendars/{calendarId}/bookings
// Query params: status, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	calendarIDStr := vars["calendarId"]

	calendarID, err := strconv.ParseInt(calendarIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/bookings - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	consultantID, ok := middleware.GetConsultantID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars/{id}/bookings - Missing consultant ID")
		handlers.RespondUnauthorized(w, msgMissingConsultantID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		calendarID,
		consultantID,
		query.Get("status"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит владение календарём
	result, err := h.service.GetCalendarBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/bookings - Calendar not found: calendar_id=%d", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /calendars/{id}/bookings - Access denied: calendar_id=%d, consultant_id=%d",
				calendarID, consultantID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /calendars/{id}/bookings - Failed to get bookings: calendar_id=%d, error=%v",
				calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/bookings - Bookings retrieved successfully: calendar_id=%d, count=%d",
		calendarID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
