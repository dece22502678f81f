package notifier

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingEvent событие по записи, отправляемое в сервис уведомлений
// Сервис уведомлений сам планирует напоминания по дате и времени записи
type BookingEvent struct {
	BookingID         int64   `json:"bookingId"`
	CalendarID        int64   `json:"calendarId"`
	Status            string  `json:"status"`
	BookingDate       string  `json:"bookingDate"` // "2025-10-15"
	StartTime         string  `json:"startTime"`   // "10:00"
	ServiceName       string  `json:"serviceName"`
	ClientName        string  `json:"clientName"`
	ClientPhone       string  `json:"clientPhone"`
	ClientEmail       *string `json:"clientEmail,omitempty"`
	ClientTelegram    *string `json:"clientTelegram,omitempty"`
	ConfirmationToken string  `json:"confirmationToken"`
}
