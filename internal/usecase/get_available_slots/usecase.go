package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	scheduleRepo "github.com/nlukyanov/consultant-booking/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Чтение идёт без блокировок: результат - снимок на момент запроса,
// который может устареть до отправки брони. Создание записи заново
// валидирует слот под сериализуемой транзакцией
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: calendar=%d, service=%d, date=%s",
		req.CalendarID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем календарь
	calendar, err := uc.scheduleRepo.GetCalendar(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrCalendarNotFound) {
			uc.logger.Warn("GetAvailableSlots: calendar id=%d not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get calendar id=%d: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	if !calendar.IsActive {
		uc.logger.Warn("GetAvailableSlots: calendar id=%d is inactive", req.CalendarID)
		return nil, ErrCalendarNotFound
	}

	// 4. Получаем услугу и проверяем, что она доступна в этом календаре
	service, err := uc.scheduleRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.AvailableOn(calendar) {
		uc.logger.Warn("GetAvailableSlots: service id=%d not available on calendar id=%d",
			req.ServiceID, req.CalendarID)
		return nil, ErrServiceNotFound
	}

	// 5. Получаем окна доступности на этот день недели
	dayOfWeek := domain.WeekdayIndex(req.Date)
	windows, err := uc.scheduleRepo.GetWindows(ctx, req.CalendarID, dayOfWeek)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	response := &Response{
		Date:       req.Date,
		CalendarID: req.CalendarID,
		ServiceID:  req.ServiceID,
		Windows:    toResponseWindows(windows),
		Slots:      []domain.Slot{},
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no availability windows for calendar=%d, day=%d",
			req.CalendarID, dayOfWeek)
		return response, nil
	}

	// 6. Быстрая проверка дневного лимита - если лимит исчерпан,
	// слоты не генерируем вовсе
	if calendar.HasDailyCap() {
		count, err := uc.bookingRepo.CountActiveByCalendarAndDate(ctx, req.CalendarID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		if count >= calendar.MaxBookingsPerDay {
			uc.logger.Info("GetAvailableSlots: daily cap reached for calendar=%d, date=%s (%d/%d)",
				req.CalendarID, req.Date.Format(domain.DateFormat), count, calendar.MaxBookingsPerDay)
			return response, nil
		}
	}

	// 7. Генерируем кандидатов с учётом lead time
	candidates := generateCandidates(windows, service.DurationMinutes, req.Date, now, calendar.BookAheadHours)
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no candidates for calendar=%d, date=%s",
			req.CalendarID, req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 8. Получаем блокирующие записи на эту дату
	bookings, err := uc.bookingRepo.GetByCalendarAndDate(ctx, req.CalendarID, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Отфильтровываем пересечения с учётом буфера
	response.Slots = filterAvailable(candidates, bookings, calendar.BreakBetweenBookingsMinutes)

	uc.logger.Info("GetAvailableSlots: %d of %d candidates available for calendar=%d, service=%d, date=%s",
		len(response.Slots), len(candidates), req.CalendarID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return response, nil
}

func toResponseWindows(windows []*domain.AvailabilityWindow) []Window {
	result := make([]Window, len(windows))
	for i, w := range windows {
		result[i] = Window{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		}
	}
	return result
}
