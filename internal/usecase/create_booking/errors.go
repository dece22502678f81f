package create_booking

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден или неактивен
	ErrCalendarNotFound = errors.New("create_booking: calendar not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена,
	// неактивна или не принадлежит консультанту календаря
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrDurationMismatch возвращается, когда присланная длительность
	// расходится с длительностью услуги больше, чем на допуск
	ErrDurationMismatch = errors.New("create_booking: duration does not match service")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrOutsideWindow возвращается, когда слот не помещается целиком
	// ни в одно окно доступности
	ErrOutsideWindow = errors.New("create_booking: slot is outside availability windows")

	// ErrTooLateToBook возвращается, когда слот начинается раньше,
	// чем now + bookAheadHours
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrDailyLimitReached возвращается при исчерпании дневного лимита записей
	ErrDailyLimitReached = errors.New("create_booking: daily bookings limit reached")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с существующей
	// записью, в том числе при проигрыше гонки за слот
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
