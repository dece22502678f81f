package get_calendar_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	"github.com/nlukyanov/consultant-booking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	calendarID int64,
	consultantID int64,
	statusStr string,
	startDateStr string,
	endDateStr string,
	includeInactiveStr string,
) (*models.GetCalendarBookingsRequest, error) {
	req := &models.GetCalendarBookingsRequest{
		ConsultantID:    consultantID,
		CalendarID:      calendarID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	// Одиночная дата без второй границы означает период из одного дня
	if req.StartDate != nil && req.EndDate == nil {
		req.EndDate = req.StartDate
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
