package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	scheduleRepo "github.com/nlukyanov/consultant-booking/internal/infra/storage/schedule"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	count    int
	countErr error
}

func (f *fakeBookingRepo) GetByCalendarAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) CountActiveByCalendarAndDate(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.count, f.countErr
}

type fakeScheduleRepo struct {
	calendar *domain.Calendar
	service  *domain.Service
	windows  []*domain.AvailabilityWindow

	calendarErr error
	serviceErr  error

	gotDayOfWeek int
}

func (f *fakeScheduleRepo) GetCalendar(_ context.Context, _ int64) (*domain.Calendar, error) {
	if f.calendarErr != nil {
		return nil, f.calendarErr
	}
	return f.calendar, nil
}

func (f *fakeScheduleRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeScheduleRepo) GetWindows(_ context.Context, _ int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	f.gotDayOfWeek = dayOfWeek
	return f.windows, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookingRepo *fakeBookingRepo, schedule *fakeScheduleRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookingRepo, schedule, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func defaultFixtures(t *testing.T) (*fakeBookingRepo, *fakeScheduleRepo) {
	t.Helper()
	bookingRepo := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{
		calendar: &domain.Calendar{ID: 10, ConsultantID: 1, IsActive: true},
		service:  &domain.Service{ID: 20, ConsultantID: 1, DurationMinutes: 60, IsActive: true},
		windows:  []*domain.AvailabilityWindow{testWindow(t, "09:00", "12:00")},
	}
	return bookingRepo, schedule
}

func TestExecute_Success(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(bookingRepo, schedule, now)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, 0, schedule.gotDayOfWeek)
	assert.Len(t, resp.Windows, 1)
	assert.Equal(t, "09:00", string(resp.Slots[0].StartTime))
	assert.Equal(t, "11:00", string(resp.Slots[len(resp.Slots)-1].StartTime))
}

func TestExecute_ValidationError(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	uc := newTestUseCase(bookingRepo, schedule, time.Now())

	_, err := uc.Execute(context.Background(), &Request{CalendarID: 0, ServiceID: 20, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CalendarNotFound(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.calendarErr = scheduleRepo.ErrCalendarNotFound
	uc := newTestUseCase(bookingRepo, schedule, time.Now())

	_, err := uc.Execute(context.Background(), &Request{CalendarID: 99, ServiceID: 20, Date: time.Now()})
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestExecute_InactiveCalendarHidden(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.calendar.IsActive = false
	uc := newTestUseCase(bookingRepo, schedule, time.Now())

	_, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: time.Now()})
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.serviceErr = scheduleRepo.ErrServiceNotFound
	uc := newTestUseCase(bookingRepo, schedule, time.Now())

	_, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 99, Date: time.Now()})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ForeignServiceHidden(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.service.ConsultantID = 2
	uc := newTestUseCase(bookingRepo, schedule, time.Now())

	_, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: time.Now()})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NoWindowsEmptySlots(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.windows = nil
	uc := newTestUseCase(bookingRepo, schedule, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: time.Now()})
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
	assert.Empty(t, resp.Slots)
}

// Дневной лимит исчерпан: слоты пустые, окна в ответе остаются
func TestExecute_DailyCapReached(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.calendar.MaxBookingsPerDay = 3
	bookingRepo.count = 3
	uc := newTestUseCase(bookingRepo, schedule, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: monday})
	require.NoError(t, err)
	assert.Len(t, resp.Windows, 1)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DailyCapNotReached(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.calendar.MaxBookingsPerDay = 3
	bookingRepo.count = 2
	uc := newTestUseCase(bookingRepo, schedule, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: monday})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
}

func TestExecute_ExistingBookingFiltered(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	bookingRepo.bookings = []*domain.Booking{blockingBooking(t, "09:00", "10:00")}
	uc := newTestUseCase(bookingRepo, schedule, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:15", "10:30", "10:45", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_BufferShrinksSlots(t *testing.T) {
	bookingRepo, schedule := defaultFixtures(t)
	schedule.calendar.BreakBetweenBookingsMinutes = 15
	bookingRepo.bookings = []*domain.Booking{blockingBooking(t, "09:00", "10:00")}
	uc := newTestUseCase(bookingRepo, schedule, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{CalendarID: 10, ServiceID: 20, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:15", "10:30", "10:45", "11:00"}, slotStarts(resp.Slots))
}
