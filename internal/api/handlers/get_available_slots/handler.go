package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nlukyanov/consultant-booking/internal/api/handlers"
	getAvailableSlots "github.com/nlukyanov/consultant-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCalendarNotFound  = "календарь не найден"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем calendarId из URL
	calendarIDStr := vars["calendarId"]
	calendarID, err := strconv.ParseInt(calendarIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-slots - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /calendars/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /calendars/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(calendarID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/available-slots - Calendar not found: calendar_id=%d", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /calendars/{id}/available-slots - Service not found: calendar_id=%d, service_id=%d",
				calendarID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /calendars/{id}/available-slots - Failed to get slots: calendar_id=%d, service_id=%d, error=%v",
				calendarID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /calendars/{id}/available-slots - Slots retrieved successfully: calendar_id=%d, service_id=%d, slots_count=%d",
		calendarID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
