package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	bookingRepo "github.com/nlukyanov/consultant-booking/internal/infra/storage/booking"
	scheduleRepo "github.com/nlukyanov/consultant-booking/internal/infra/storage/schedule"
	"github.com/nlukyanov/consultant-booking/internal/service/bookings/models"
)

// Service сервис для работы с записями консультанта
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	notifier     Notifier
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Доступно только консультанту - владельцу календаря
func (s *Service) GetByID(ctx context.Context, id int64, consultantID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for consultant=%d", id, consultantID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkConsultantAccess(ctx, booking.CalendarID, consultantID); err != nil {
		s.logger.Warn("GetByID: access denied for consultant=%d to booking id=%d", consultantID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetByToken получает запись по токену подтверждения
// Токен непредсказуем и известен только клиенту - проверка прав не нужна
func (s *Service) GetByToken(ctx context.Context, token string) (*models.BookingResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByToken: booking not found by token")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByToken - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCalendarBookings получает записи календаря с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
// Доступно только консультанту - владельцу календаря
func (s *Service) GetCalendarBookings(ctx context.Context, req *models.GetCalendarBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCalendarBookings: fetching bookings for calendar=%d, consultant=%d",
		req.CalendarID, req.ConsultantID)

	if err := s.checkConsultantAccess(ctx, req.CalendarID, req.ConsultantID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCalendarBookings: invalid filter for calendar=%d: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCalendarWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCalendarBookings: repository error for calendar=%d: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: GetCalendarBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCalendarBookings: successfully fetched %d bookings for calendar=%d",
		len(bookings), req.CalendarID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает запись (pending -> confirmed)
func (s *Service) Confirm(ctx context.Context, bookingID int64, consultantID int64) error {
	s.logger.Info("Confirm: confirming booking id=%d by consultant=%d", bookingID, consultantID)

	booking, err := s.getBooking(ctx, bookingID, "Confirm")
	if err != nil {
		return err
	}

	if err := s.checkConsultantAccess(ctx, booking.CalendarID, consultantID); err != nil {
		s.logger.Warn("Confirm: access denied for consultant=%d to booking id=%d", consultantID, bookingID)
		return err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	return s.applyStatus(ctx, booking, domain.StatusConfirmed, "Confirm")
}

// Cancel отменяет запись (pending/confirmed -> cancelled)
// Фиксирует время отмены
func (s *Service) Cancel(ctx context.Context, bookingID int64, consultantID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by consultant=%d", bookingID, consultantID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if err := s.checkConsultantAccess(ctx, booking.CalendarID, consultantID); err != nil {
		s.logger.Warn("Cancel: access denied for consultant=%d to booking id=%d", consultantID, bookingID)
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	s.notifyStatusChanged(ctx, booking, domain.StatusCancelled)
	return nil
}

// Complete завершает запись (confirmed -> completed)
// Завершённая запись освобождает слот, но продолжает учитываться
// в дневном лимите
func (s *Service) Complete(ctx context.Context, bookingID int64, consultantID int64) error {
	s.logger.Info("Complete: completing booking id=%d by consultant=%d", bookingID, consultantID)

	booking, err := s.getBooking(ctx, bookingID, "Complete")
	if err != nil {
		return err
	}

	if err := s.checkConsultantAccess(ctx, booking.CalendarID, consultantID); err != nil {
		s.logger.Warn("Complete: access denied for consultant=%d to booking id=%d", consultantID, bookingID)
		return err
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s", bookingID, booking.Status)
		return ErrInvalidTransition
	}

	return s.applyStatus(ctx, booking, domain.StatusCompleted, "Complete")
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) applyStatus(ctx context.Context, booking *domain.Booking, status domain.BookingStatus, op string) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: booking id=%d moved to status=%s", op, booking.ID, status)
	s.notifyStatusChanged(ctx, booking, status)
	return nil
}

// notifyStatusChanged отправляет уведомление о смене статуса, best-effort
func (s *Service) notifyStatusChanged(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) {
	if s.notifier == nil {
		return
	}

	changed := *booking
	changed.Status = status
	if err := s.notifier.BookingStatusChanged(ctx, &changed); err != nil {
		s.logger.Warn("failed to notify status change for booking id=%d: %v", booking.ID, err)
	}
}

// checkConsultantAccess проверяет, что консультант владеет календарём
func (s *Service) checkConsultantAccess(ctx context.Context, calendarID int64, consultantID int64) error {
	calendar, err := s.scheduleRepo.GetCalendar(ctx, calendarID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrCalendarNotFound) {
			s.logger.Warn("checkConsultantAccess: calendar id=%d not found", calendarID)
			return ErrCalendarNotFound
		}
		s.logger.Error("checkConsultantAccess: failed to get calendar id=%d: %v", calendarID, err)
		return fmt.Errorf("%w: checkConsultantAccess - failed to get calendar: %v", ErrInternal, err)
	}

	if calendar.ConsultantID != consultantID {
		s.logger.Warn("checkConsultantAccess: consultant=%d does not own calendar=%d", consultantID, calendarID)
		return ErrAccessDenied
	}

	return nil
}
