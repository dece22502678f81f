package models

import (
	"errors"
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCalendarBookingsRequest запрос на получение записей календаря
type GetCalendarBookingsRequest struct {
	ConsultantID    int64      `json:"consultantId"`
	CalendarID      int64      `json:"calendarId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCalendarBookingsRequest) ToDomainFilter() (domain.CalendarBookingsFilter, error) {
	filter := domain.CalendarBookingsFilter{
		CalendarID:      r.CalendarID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID         int64 `json:"id"`
	CalendarID int64 `json:"calendarId"`
	ServiceID  int64 `json:"serviceId"`

	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         *string `json:"endTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`

	ClientName     string  `json:"clientName"`
	ClientPhone    string  `json:"clientPhone"`
	ClientEmail    *string `json:"clientEmail,omitempty"`
	ClientTelegram *string `json:"clientTelegram,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	// Денормализованные данные услуги
	ServiceName string `json:"serviceName"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CalendarID:      b.CalendarID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		ClientEmail:     b.ClientEmail,
		ClientTelegram:  b.ClientTelegram,
		Notes:           b.Notes,
		ServiceName:     b.ServiceName,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.EndTime != nil {
		endTime := b.EndTime.String()
		resp.EndTime = &endTime
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	for _, valid := range domain.ValidStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}
