package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	"github.com/nlukyanov/consultant-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CalendarID <= 0 {
		return fmt.Errorf("%w: calendarID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateDuration сверяет присланную длительность с длительностью услуги
// Допуск в одну минуту покрывает округления на стороне клиента
func validateDuration(requested, actual int) error {
	diff := requested - actual
	if diff < 0 {
		diff = -diff
	}
	if diff > domain.DurationToleranceMinutes {
		return fmt.Errorf("%w: requested %d minutes, service lasts %d", ErrDurationMismatch, requested, actual)
	}
	return nil
}

// validateWithinWindows проверяет, что слот [start, end) целиком помещается
// хотя бы в одно доступное окно
func validateWithinWindows(windows []*domain.AvailabilityWindow, start, end types.TimeString) error {
	for _, window := range windows {
		if !window.IsAvailable {
			continue
		}
		if window.Contains(start, end) {
			return nil
		}
	}
	return ErrOutsideWindow
}

// validateLeadTime проверяет, что начало слота не раньше now + bookAheadHours
func validateLeadTime(date time.Time, startTime types.TimeString, now time.Time, bookAheadHours int) error {
	slotStart, err := startTime.OnDate(date)
	if err != nil {
		return fmt.Errorf("%w: failed to resolve slot start: %v", ErrInternal, err)
	}

	earliestStart := now.Add(time.Duration(bookAheadHours) * time.Hour)
	if slotStart.Before(earliestStart) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, bookAheadHours)
	}
	return nil
}

// findConflict возвращает первую блокирующую запись, пересекающуюся со слотом
// с учётом буфера, или nil
func findConflict(slot domain.Slot, bookings []*domain.Booking, bufferMinutes int) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsBlocking() {
			continue
		}
		if slot.Overlaps(booking.StartTime, *booking.EndTime, bufferMinutes) {
			return booking
		}
	}
	return nil
}
