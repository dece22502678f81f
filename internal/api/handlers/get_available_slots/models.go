package get_available_slots

import (
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	getAvailableSlots "github.com/nlukyanov/consultant-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date             string      `json:"date"`
	CalendarID       int64       `json:"calendarId"`
	ServiceID        int64       `json:"serviceId"`
	AvailableWindows []TimeRange `json:"availableWindows"`
	AvailableSlots   []TimeRange `json:"availableSlots"`
}

// TimeRange интервал "HH:MM"-"HH:MM"
type TimeRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	windows := make([]TimeRange, len(resp.Windows))
	for i, w := range resp.Windows {
		windows[i] = TimeRange{
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		}
	}

	slots := make([]TimeRange, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeRange{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:             resp.Date.Format(domain.DateFormat),
		CalendarID:       resp.CalendarID,
		ServiceID:        resp.ServiceID,
		AvailableWindows: windows,
		AvailableSlots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(calendarID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		CalendarID: calendarID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
