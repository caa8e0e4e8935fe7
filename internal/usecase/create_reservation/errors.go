package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrUnknownAmenityKind возвращается для неизвестного вида объекта
	ErrUnknownAmenityKind = errors.New("create_reservation: unknown amenity kind")

	// ErrPastDate возвращается, когда дата бронирования раньше сегодняшней
	ErrPastDate = errors.New("create_reservation: booking date is in the past")

	// ErrPastWindow возвращается, когда сегодняшнее окно уже закончилось
	ErrPastWindow = errors.New("create_reservation: time window has already passed")

	// ErrInvalidFormat возвращается при некорректном окне времени
	ErrInvalidFormat = errors.New("create_reservation: invalid time slot format")

	// ErrCapacityExceeded возвращается, когда все места по ключу уже заняты
	ErrCapacityExceeded = errors.New("create_reservation: capacity exceeded")

	// ErrSlotAlreadyTaken возвращается, когда конкурентный запрос занял место между проверкой и записью
	ErrSlotAlreadyTaken = errors.New("create_reservation: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// CapacityExceededError отказ по вместимости с диагностикой
type CapacityExceededError struct {
	Kind  domain.AmenityKind
	Limit int
	Count int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s allows %d booking(s), %d already taken", ErrCapacityExceeded, e.Kind, e.Limit, e.Count)
}

// Is позволяет проверять отказ через errors.Is(err, ErrCapacityExceeded)
func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// isUseCaseError ошибка уже приведена к ошибкам usecase
func isUseCaseError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrUnknownAmenityKind,
		ErrPastDate,
		ErrPastWindow,
		ErrInvalidFormat,
		ErrCapacityExceeded,
		ErrSlotAlreadyTaken,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// outcome метка исхода для метрик
func outcome(err error) string {
	switch {
	case err == nil:
		return "admitted"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrPastWindow):
		return "past_window"
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrSlotAlreadyTaken):
		return "slot_already_taken"
	case errors.Is(err, ErrUnknownAmenityKind):
		return "unknown_amenity_kind"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
