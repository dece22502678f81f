package create_booking

import (
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	createBooking "github.com/nlukyanov/consultant-booking/internal/usecase/create_booking"
	"github.com/nlukyanov/consultant-booking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CalendarID     int64   `json:"calendarId"`
	ServiceID      int64   `json:"serviceId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	EndTime        string  `json:"endTime"`     // "11:00"
	ClientName     string  `json:"clientName"`
	ClientPhone    string  `json:"clientPhone"`
	ClientEmail    *string `json:"clientEmail,omitempty"`
	ClientTelegram *string `json:"clientTelegram,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	CalendarID        int64   `json:"calendarId"`
	ServiceID         int64   `json:"serviceId"`
	BookingDate       string  `json:"bookingDate"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	ClientName        string  `json:"clientName"`
	ClientPhone       string  `json:"clientPhone"`
	ClientEmail       *string `json:"clientEmail,omitempty"`
	ClientTelegram    *string `json:"clientTelegram,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	ConfirmationToken string  `json:"confirmationToken"`
	ServiceName       string  `json:"serviceName"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Длительность вычисляется из присланной пары startTime/endTime
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	duration, err := startTime.MinutesUntil(endTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CalendarID:      r.CalendarID,
		ServiceID:       r.ServiceID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: duration,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		ClientEmail:     r.ClientEmail,
		ClientTelegram:  r.ClientTelegram,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		CalendarID:        resp.CalendarID,
		ServiceID:         resp.ServiceID,
		BookingDate:       resp.BookingDate.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		DurationMinutes:   resp.DurationMinutes,
		Status:            resp.Status,
		ClientName:        resp.ClientName,
		ClientPhone:       resp.ClientPhone,
		ClientEmail:       resp.ClientEmail,
		ClientTelegram:    resp.ClientTelegram,
		Notes:             resp.Notes,
		ConfirmationToken: resp.ConfirmationToken,
		ServiceName:       resp.ServiceName,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
