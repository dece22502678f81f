package create_booking

import (
	"time"

	"github.com/nlukyanov/consultant-booking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CalendarID int64            // ID календаря
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")

	// DurationMinutes длительность, которую видел клиент при выборе слота
	// Сверяется с актуальной длительностью услуги с допуском в одну минуту
	DurationMinutes int

	ClientName     string  // Имя клиента
	ClientPhone    string  // Телефон клиента
	ClientEmail    *string // Email (опционально)
	ClientTelegram *string // Telegram username (опционально)
	Notes          *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64
	CalendarID int64
	ServiceID  int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	ClientName     string
	ClientPhone    string
	ClientEmail    *string
	ClientTelegram *string
	Notes          *string

	// ConfirmationToken выдаётся клиенту для привязки канала уведомлений
	ConfirmationToken string

	// Денормализованные данные услуги
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
