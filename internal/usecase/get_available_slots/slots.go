package get_available_slots

import (
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
	"github.com/nlukyanov/consultant-booking/pkg/types"
)

// generateCandidates генерирует кандидатов слотов из окон доступности
// Внутри каждого окна кандидаты идут от начала окна с фиксированным шагом
// domain.SlotStepMinutes, пока слот целиком помещается в окно
// Кандидаты, начинающиеся раньше now + bookAheadHours, отбрасываются
//
// Окна могут пересекаться - дубли кандидатов между окнами допустимы,
// фильтр конфликтов отсеет их одинаково
func generateCandidates(
	windows []*domain.AvailabilityWindow,
	durationMinutes int,
	date time.Time,
	now time.Time,
	bookAheadHours int,
) []domain.Slot {
	candidates := make([]domain.Slot, 0)

	if durationMinutes <= 0 {
		return candidates
	}

	earliestStart := now.Add(time.Duration(bookAheadHours) * time.Hour)

	for _, window := range windows {
		if !window.IsAvailable {
			continue
		}

		length, err := window.LengthMinutes()
		if err != nil || length <= 0 {
			continue
		}

		// Услуга не помещается в окно целиком - пропускаем окно
		if durationMinutes > length {
			continue
		}

		windowStart, err := window.StartTime.Minutes()
		if err != nil {
			continue
		}
		windowEnd, err := window.EndTime.Minutes()
		if err != nil {
			continue
		}

		for start := windowStart; start+durationMinutes <= windowEnd; start += domain.SlotStepMinutes {
			slot, ok := buildSlot(start, durationMinutes)
			if !ok {
				break
			}

			// Проверка lead time: начало слота на конкретной дате
			// должно быть не раньше now + bookAheadHours
			slotStart, err := slot.StartTime.OnDate(date)
			if err != nil || slotStart.Before(earliestStart) {
				continue
			}

			candidates = append(candidates, slot)
		}
	}

	return candidates
}

func buildSlot(startMinutes, durationMinutes int) (domain.Slot, bool) {
	start, err := types.NewTimeStringFromMinutes(startMinutes)
	if err != nil {
		return domain.Slot{}, false
	}
	end, err := types.NewTimeStringFromMinutes(startMinutes + durationMinutes)
	if err != nil {
		return domain.Slot{}, false
	}
	return domain.Slot{StartTime: start, EndTime: end}, true
}

// filterAvailable отфильтровывает кандидатов, пересекающихся с существующими
// записями с учётом буфера между записями
// Учитываются только блокирующие записи (pending/confirmed с известным
// концом); отменённые, завершённые и записи без end_time пропускаются
//
// Сканирование O(кандидаты x записи) - при десятках записей на день этого
// достаточно, сортировка и интервальные деревья не нужны
func filterAvailable(
	candidates []domain.Slot,
	existingBookings []*domain.Booking,
	bufferMinutes int,
) []domain.Slot {
	available := make([]domain.Slot, 0, len(candidates))

	for _, candidate := range candidates {
		if !hasConflict(candidate, existingBookings, bufferMinutes) {
			available = append(available, candidate)
		}
	}

	return available
}

// hasConflict проверяет кандидата против всех блокирующих записей
func hasConflict(candidate domain.Slot, bookings []*domain.Booking, bufferMinutes int) bool {
	for _, booking := range bookings {
		if !booking.IsBlocking() {
			continue
		}

		if candidate.Overlaps(booking.StartTime, *booking.EndTime, bufferMinutes) {
			return true
		}
	}

	return false
}
