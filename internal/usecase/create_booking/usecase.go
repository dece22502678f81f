package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	scheduleRepo "github.com/nlukyanov/consultant-booking/internal/infra/storage/schedule"
	"github.com/nlukyanov/consultant-booking/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Все проверки состояния календаря и вставка идут в одной сериализуемой
// транзакции: два конкурирующих запроса на один слот не могут пройти
// проверку пересечений одновременно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: calendar=%d, service=%d, date=%s, time=%s",
		req.CalendarID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем календарь
	calendar, err := uc.scheduleRepo.GetCalendar(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrCalendarNotFound) {
			uc.logger.Warn("CreateBooking: calendar id=%d not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("CreateBooking: failed to get calendar id=%d: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	if !calendar.IsActive {
		uc.logger.Warn("CreateBooking: calendar id=%d is inactive", req.CalendarID)
		return nil, ErrCalendarNotFound
	}

	// 5. Получаем услугу и проверяем доступность в календаре
	service, err := uc.scheduleRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.AvailableOn(calendar) {
		uc.logger.Warn("CreateBooking: service id=%d not available on calendar id=%d",
			req.ServiceID, req.CalendarID)
		return nil, ErrServiceNotFound
	}

	// 6. Сверяем длительность: слот считается от актуальной длительности
	// услуги, а не от присланной клиентом
	if err := validateDuration(req.DurationMinutes, service.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: duration mismatch: requested=%d, actual=%d",
			req.DurationMinutes, service.DurationMinutes)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot %s+%dm does not fit into a day",
			req.StartTime, service.DurationMinutes)
		return nil, fmt.Errorf("%w: invalid slot end time: %v", ErrInvalidInput, err)
	}

	slot := domain.Slot{StartTime: req.StartTime, EndTime: endTime}

	var result *domain.Booking

	// 7. Выполняем проверки состояния и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Слот должен целиком помещаться в окно доступности
		dayOfWeek := domain.WeekdayIndex(req.Date)
		// Ошибки запросов внутри транзакции оборачиваются через %w:
		// конфликт сериализации может возникнуть прямо в запросе,
		// и DoSerializable должен увидеть код 40001 для повтора
		windows, err := uc.scheduleRepo.GetWindows(txCtx, req.CalendarID, dayOfWeek)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get windows: %w", ErrInternal, err)
		}

		if err := validateWithinWindows(windows, slot.StartTime, slot.EndTime); err != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s outside windows for calendar=%d, day=%d",
				slot.StartTime, slot.EndTime, req.CalendarID, dayOfWeek)
			return err
		}

		// 7.2. Проверяем lead time: слот не может начинаться раньше
		// now + fora, даже при нулевой форе - прошедшее время не бронируется
		if err := validateLeadTime(req.Date, slot.StartTime, now, calendar.BookAheadHours); err != nil {
			uc.logger.Warn("CreateBooking: lead time check failed: %v", err)
			return err
		}

		// 7.3. Проверяем дневной лимит - считаются все неотменённые записи
		if calendar.HasDailyCap() {
			count, err := uc.bookingRepo.CountActiveByCalendarAndDate(txCtx, req.CalendarID, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to count bookings: %v", err)
				return fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
			}

			if count >= calendar.MaxBookingsPerDay {
				uc.logger.Warn("CreateBooking: daily limit reached for calendar=%d, date=%s (%d/%d)",
					req.CalendarID, req.Date.Format(domain.DateFormat), count, calendar.MaxBookingsPerDay)
				return ErrDailyLimitReached
			}
		}

		// 7.4. Получаем записи на дату с блокировкой (FOR UPDATE)
		// и проверяем пересечения с учётом буфера
		bookings, err := uc.bookingRepo.GetByCalendarAndDate(txCtx, req.CalendarID, req.Date, false)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if conflict := findConflict(slot, bookings, calendar.BreakBetweenBookingsMinutes); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s conflicts with booking id=%d (%s-%s)",
				slot.StartTime, slot.EndTime, conflict.ID, conflict.StartTime, *conflict.EndTime)
			return ErrSlotNotAvailable
		}

		// 7.5. Создаем запись со статусом pending и токеном подтверждения
		booking := &domain.Booking{
			CalendarID:        req.CalendarID,
			ServiceID:         req.ServiceID,
			BookingDate:       req.Date,
			StartTime:         slot.StartTime,
			EndTime:           &slot.EndTime,
			Status:            domain.StatusPending,
			ClientName:        req.ClientName,
			ClientPhone:       req.ClientPhone,
			ClientEmail:       req.ClientEmail,
			ClientTelegram:    req.ClientTelegram,
			Notes:             req.Notes,
			ConfirmationToken: uuid.NewString(),
			// Денормализация данных услуги
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш гонки сериализации неотличим для клиента от занятого слота
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted for calendar=%d, date=%s, time=%s",
				req.CalendarID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 8. Уведомление после коммита, best-effort
	if uc.notifier != nil {
		if err := uc.notifier.BookingCreated(ctx, result); err != nil {
			uc.logger.Warn("CreateBooking: failed to notify about booking id=%d: %v", result.ID, err)
		}
	}

	return toResponse(result), nil
}

func toResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:                booking.ID,
		CalendarID:        booking.CalendarID,
		ServiceID:         booking.ServiceID,
		BookingDate:       booking.BookingDate,
		StartTime:         booking.StartTime,
		EndTime:           *booking.EndTime,
		DurationMinutes:   booking.DurationMinutes,
		Status:            string(booking.Status),
		ClientName:        booking.ClientName,
		ClientPhone:       booking.ClientPhone,
		ClientEmail:       booking.ClientEmail,
		ClientTelegram:    booking.ClientTelegram,
		Notes:             booking.Notes,
		ConfirmationToken: booking.ConfirmationToken,
		ServiceName:       booking.ServiceName,
		CreatedAt:         booking.CreatedAt,
		UpdatedAt:         booking.UpdatedAt,
	}
}
