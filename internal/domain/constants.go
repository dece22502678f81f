package domain

// Slot generation constants
const (
	// SlotStepMinutes фиксированный шаг генерации кандидатов
	SlotStepMinutes = 15

	// DurationToleranceMinutes допустимое расхождение между end-start
	// и длительностью услуги (клиентское округление)
	DurationToleranceMinutes = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, при которых запись занимает свой интервал
// Используется проверкой пересечений
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
