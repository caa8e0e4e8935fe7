package create_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.AmenityID <= 0 {
		return fmt.Errorf("%w: amenityID must be positive", ErrInvalidInput)
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	return nil
}

// resolveRules находит правила допуска для вида объекта
func resolveRules(kind string) (domain.AmenityRules, error) {
	amenityKind, err := domain.ParseAmenityKind(kind)
	if err != nil {
		return domain.AmenityRules{}, fmt.Errorf("%w: %q", ErrUnknownAmenityKind, kind)
	}

	rules, err := domain.RulesFor(amenityKind)
	if err != nil {
		return domain.AmenityRules{}, fmt.Errorf("%w: %v", ErrUnknownAmenityKind, err)
	}

	return rules, nil
}

// validateBookingDate отклоняет даты раньше сегодняшней, для любого вида объекта
func validateBookingDate(bookingDate, today time.Time) error {
	if bookingDate.Before(today) {
		return fmt.Errorf("%w: %s is before %s",
			ErrPastDate, bookingDate.Format(domain.DateFormat), today.Format(domain.DateFormat))
	}
	return nil
}

// parseWindow разбирает окно для объектов с окнами
func parseWindow(timeSlot *string) (domain.TimeWindow, error) {
	if timeSlot == nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: time slot is required for this amenity", ErrInvalidFormat)
	}

	window, err := domain.ParseTimeWindow(*timeSlot)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWindowFormat) {
			return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return window, nil
}

// validateWindowNotElapsed для сегодняшней даты требует, чтобы окно ещё не закончилось.
// Для будущих дат проверка не нужна.
func validateWindowNotElapsed(bookingDate, today, windowEnd, now time.Time) error {
	if !bookingDate.Equal(today) {
		return nil
	}

	if !windowEnd.After(now) {
		return fmt.Errorf("%w: window ended at %s", ErrPastWindow, windowEnd.Format(domain.TimeFormat))
	}

	return nil
}
