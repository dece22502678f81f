package get_available_slots

import (
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	"github.com/nlukyanov/consultant-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	CalendarID int64     // ID календаря
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time
	CalendarID int64
	ServiceID  int64
	Windows    []Window // Окна доступности на этот день недели
	Slots      []domain.Slot
}

// Window окно доступности в ответе
type Window struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
