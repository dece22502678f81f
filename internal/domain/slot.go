package domain

import "github.com/nlukyanov/consultant-booking/pkg/types"

// Slot represents a candidate bookable interval of a service's duration
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps reports whether the slot, with both sides padded by
// bufferMinutes, overlaps the [otherStart, otherEnd) interval
// Граничащие интервалы (конец одного равен началу другого с учётом буфера)
// пересечением не считаются
func (s Slot) Overlaps(otherStart, otherEnd types.TimeString, bufferMinutes int) bool {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return false
	}
	end, err := s.EndTime.Minutes()
	if err != nil {
		return false
	}
	os, err := otherStart.Minutes()
	if err != nil {
		return false
	}
	oe, err := otherEnd.Minutes()
	if err != nil {
		return false
	}

	// свободно, если кандидат с буфером целиком раньше или целиком позже
	if end+bufferMinutes <= os || start >= oe+bufferMinutes {
		return false
	}
	return true
}
