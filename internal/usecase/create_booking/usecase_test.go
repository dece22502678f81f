package create_booking

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	bookingStorage "github.com/nlukyanov/consultant-booking/internal/infra/storage/booking"
	scheduleRepo "github.com/nlukyanov/consultant-booking/internal/infra/storage/schedule"
	"github.com/nlukyanov/consultant-booking/pkg/dbmetrics"
	"github.com/nlukyanov/consultant-booking/pkg/txmanager"
	"github.com/nlukyanov/consultant-booking/pkg/types"
)

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

// fakeBookingRepo хранит записи в памяти; безопасен для конкурентного
// доступа только под fakeTxManager
type fakeBookingRepo struct {
	nextID   int64
	bookings []*domain.Booking

	getErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetByCalendarAndDate(_ context.Context, calendarID int64, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.CalendarID != calendarID || !b.BookingDate.Equal(date) {
			continue
		}
		if !includeInactive && b.IsTerminal() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) CountActiveByCalendarAndDate(_ context.Context, calendarID int64, date time.Time) (int, error) {
	count := 0
	for _, b := range f.bookings {
		if b.CalendarID == calendarID && b.BookingDate.Equal(date) && b.CountsTowardDailyCap() {
			count++
		}
	}
	return count, nil
}

type fakeScheduleRepo struct {
	calendar *domain.Calendar
	service  *domain.Service
	windows  []*domain.AvailabilityWindow

	calendarErr error
	serviceErr  error
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

func (f *fakeScheduleRepo) GetWindows(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

// fakeTxManager сериализует транзакции мьютексом - модель сериализуемой
// изоляции для конкурентных тестов
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

// stubTx пустая транзакция для прогона реального txmanager поверх фейков
type stubTx struct{}

func (stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubTxBeginner struct{}

func (stubTxBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return stubTx{}, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []*domain.Booking
	err    error
}

func (f *fakeNotifier) BookingCreated(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, booking)
	return f.err
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

type fixtures struct {
	bookingRepo *fakeBookingRepo
	schedule    *fakeScheduleRepo
	notifier    *fakeNotifier
	uc          *UseCase
}

func setup(t *testing.T, now time.Time) *fixtures {
	t.Helper()
	bookingRepo := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{
		calendar: &domain.Calendar{ID: 10, ConsultantID: 1, IsActive: true},
		service:  &domain.Service{ID: 20, ConsultantID: 1, Name: "Консультация", DurationMinutes: 60, IsActive: true},
		windows: []*domain.AvailabilityWindow{
			{
				ID:          1,
				CalendarID:  10,
				DayOfWeek:   0,
				StartTime:   ts(t, "09:00"),
				EndTime:     ts(t, "12:00"),
				IsAvailable: true,
			},
		},
	}
	notifier := &fakeNotifier{}
	uc := NewUseCase(bookingRepo, schedule, notifier, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return &fixtures{bookingRepo: bookingRepo, schedule: schedule, notifier: notifier, uc: uc}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		CalendarID:      10,
		ServiceID:       20,
		Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), // понедельник
		StartTime:       ts(t, "10:00"),
		DurationMinutes: 60,
		ClientName:      "Иван Петров",
		ClientPhone:     "+79990001122",
	}
}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func TestExecute_Success(t *testing.T) {
	f := setup(t, testNow)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:00", string(resp.StartTime))
	assert.Equal(t, "11:00", string(resp.EndTime))
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Консультация", resp.ServiceName)
	assert.NotEmpty(t, resp.ConfirmationToken)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, resp.ID, f.notifier.events[0].ID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := setup(t, testNow)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой календарь", func(r *Request) { r.CalendarID = 0 }},
		{"нулевая услуга", func(r *Request) { r.ServiceID = 0 }},
		{"пустая дата", func(r *Request) { r.Date = time.Time{} }},
		{"пустое время", func(r *Request) { r.StartTime = "" }},
		{"кривое время", func(r *Request) { r.StartTime = "25:99" }},
		{"нулевая длительность", func(r *Request) { r.DurationMinutes = 0 }},
		{"пустое имя", func(r *Request) { r.ClientName = "  " }},
		{"пустой телефон", func(r *Request) { r.ClientPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	f := setup(t, testNow)

	req := validRequest(t)
	req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_CalendarNotFound(t *testing.T) {
	f := setup(t, testNow)
	f.schedule.calendarErr = scheduleRepo.ErrCalendarNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestExecute_InactiveCalendar(t *testing.T) {
	f := setup(t, testNow)
	f.schedule.calendar.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := setup(t, testNow)
	f.schedule.serviceErr = scheduleRepo.ErrServiceNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceBoundToOtherCalendar(t *testing.T) {
	f := setup(t, testNow)
	other := int64(11)
	f.schedule.service.CalendarID = &other

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

// Допуск в одну минуту: 59, 60 и 61 проходят, 58 и 62 - нет
func TestExecute_DurationTolerance(t *testing.T) {
	tests := []struct {
		minutes int
		wantErr bool
	}{
		{58, true},
		{59, false},
		{60, false},
		{61, false},
		{62, true},
	}

	for _, tt := range tests {
		f := setup(t, testNow)
		req := validRequest(t)
		req.DurationMinutes = tt.minutes

		_, err := f.uc.Execute(context.Background(), req)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrDurationMismatch, "minutes=%d", tt.minutes)
		} else {
			assert.NoError(t, err, "minutes=%d", tt.minutes)
		}
	}
}

func TestExecute_OutsideWindow(t *testing.T) {
	f := setup(t, testNow)

	tests := []struct {
		name  string
		start string
	}{
		{"до начала окна", "08:00"},
		{"конец вылезает за окно", "11:30"},
		{"вне всех окон", "15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			req.StartTime = ts(t, tt.start)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrOutsideWindow)
		})
	}
}

func TestExecute_SlotTouchingWindowEnd(t *testing.T) {
	f := setup(t, testNow)

	req := validRequest(t)
	req.StartTime = ts(t, "11:00") // 11:00-12:00 на границе окна

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_LeadTimeEnforced(t *testing.T) {
	// Запись на сегодня: сейчас 10:00, требуются 2 часа форы
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	f := setup(t, now)
	f.schedule.calendar.BookAheadHours = 2

	req := validRequest(t)
	req.StartTime = ts(t, "11:00")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Два дня спустя fora уже не мешает
	req = validRequest(t)
	req.Date = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// Нулевая фора не отключает проверку времени: прошедший сегодня слот
// не бронируется, будущий - бронируется
func TestExecute_PastSlotSameDayZeroLeadTime(t *testing.T) {
	now := time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC)
	f := setup(t, now)
	require.Zero(t, f.schedule.calendar.BookAheadHours)

	req := validRequest(t)
	req.StartTime = ts(t, "09:00")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req = validRequest(t)
	req.StartTime = ts(t, "11:00")
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// Конфликт сериализации на уровне запроса (конкурент держит FOR UPDATE
// и коммитит первым - 40001 приходит из SELECT, а не из COMMIT) должен
// после повторов превратиться в занятый слот, а не во внутреннюю ошибку
func TestExecute_StatementLevelSerializationConflict(t *testing.T) {
	f := setup(t, testNow)
	f.uc.txManager = txmanager.NewTransactionManager(stubTxBeginner{})
	f.bookingRepo.getErr = fmt.Errorf("%w: GetByCalendarAndDate - execute query: %w",
		bookingStorage.ErrExecQuery, &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_DailyLimit(t *testing.T) {
	f := setup(t, testNow)
	f.schedule.calendar.MaxBookingsPerDay = 2

	first := validRequest(t)
	first.StartTime = ts(t, "09:00")
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validRequest(t)
	second.StartTime = ts(t, "10:00")
	_, err = f.uc.Execute(context.Background(), second)
	require.NoError(t, err)

	third := validRequest(t)
	third.StartTime = ts(t, "11:00")
	_, err = f.uc.Execute(context.Background(), third)
	assert.ErrorIs(t, err, ErrDailyLimitReached)
}

// Отменённая запись освобождает место в дневном лимите,
// завершённая - нет
func TestExecute_DailyLimitCountsCompletedNotCancelled(t *testing.T) {
	f := setup(t, testNow)
	f.schedule.calendar.MaxBookingsPerDay = 1

	endTime := ts(t, "10:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	f.bookingRepo.bookings = []*domain.Booking{{
		ID:          1,
		CalendarID:  10,
		BookingDate: date,
		StartTime:   ts(t, "09:00"),
		EndTime:     &endTime,
		Status:      domain.StatusCancelled,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)

	f.bookingRepo.bookings[0].Status = domain.StatusCompleted
	req := validRequest(t)
	req.StartTime = ts(t, "11:00")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDailyLimitReached)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := setup(t, testNow)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	// Точно тот же слот
	_, err = f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Частичное пересечение
	req := validRequest(t)
	req.StartTime = ts(t, "10:30")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Встык - допустимо
	req = validRequest(t)
	req.StartTime = ts(t, "11:00")
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_BufferBlocksAdjacentSlot(t *testing.T) {
	f := setup(t, testNow)
	f.schedule.calendar.BreakBetweenBookingsMinutes = 15

	first := validRequest(t)
	first.StartTime = ts(t, "09:00")
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Встык теперь запрещено буфером
	second := validRequest(t)
	second.StartTime = ts(t, "10:00")
	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	third := validRequest(t)
	third.StartTime = ts(t, "10:15")
	_, err = f.uc.Execute(context.Background(), third)
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := setup(t, testNow)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	for _, b := range f.bookingRepo.bookings {
		if b.ID == resp.ID {
			b.Status = domain.StatusCancelled
		}
	}

	_, err = f.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_NotifierFailureDoesNotFailBooking(t *testing.T) {
	f := setup(t, testNow)
	f.notifier.err = context.DeadlineExceeded

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

// Два конкурирующих запроса на один слот: ровно один выигрывает
func TestExecute_ConcurrentSameSlot(t *testing.T) {
	f := setup(t, testNow)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), validRequest(t))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, f.bookingRepo.bookings, 1)
}
