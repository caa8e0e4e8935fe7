package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// buildSlotAvailability считает состояние окон-кандидатов по подтверждённым бронированиям.
// Окно исключается из AvailableWindows, как только в его начале есть хотя бы одно бронирование,
// независимо от вместимости. Remaining при этом показывает реальный остаток по точному окну.
func buildSlotAvailability(reservations []domain.Reservation, capacity int, loc *time.Location) *SlotAvailability {
	startsTaken := make(map[string]bool, len(reservations))
	bookedByWindow := make(map[string]int, len(reservations))
	bookedByStart := make(map[string]int, len(reservations))

	for i := range reservations {
		r := &reservations[i]

		start := r.StartLabel(loc)
		startsTaken[start] = true

		if r.TimeSlot != nil {
			bookedByWindow[*r.TimeSlot]++
			if window, err := domain.ParseTimeWindow(*r.TimeSlot); err == nil {
				start = window.StartLabel()
			}
		}
		bookedByStart[start]++
	}

	candidates := domain.CandidateWindows()
	result := &SlotAvailability{
		AvailableWindows: make([]domain.TimeWindow, 0, len(candidates)),
		Windows:          make([]WindowStatus, 0, len(candidates)),
		BookedByStart:    bookedByStart,
	}

	for _, w := range candidates {
		booked := bookedByWindow[w.String()]
		remaining := capacity - booked
		if remaining < 0 {
			remaining = 0
		}

		available := !startsTaken[w.StartLabel()]
		if available {
			result.AvailableWindows = append(result.AvailableWindows, w)
		}

		result.Windows = append(result.Windows, WindowStatus{
			Window:    w,
			Booked:    booked,
			Capacity:  capacity,
			Remaining: remaining,
			Available: available,
		})
	}

	return result
}

// buildDayStatus состояние дня для объектов, бронируемых на весь день
func buildDayStatus(reservations []domain.Reservation, capacity int) *DayStatus {
	taken := len(reservations)
	return &DayStatus{
		TakenCount: taken,
		Capacity:   capacity,
		Free:       taken < capacity,
		IsBooked:   taken > 0,
	}
}
