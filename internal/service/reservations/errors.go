package reservations

import "errors"

var (
	// ErrNotFound возвращается, когда бронирование не найдено (в том числе уже отменённое)
	ErrNotFound = errors.New("reservations: reservation not found")

	// ErrNotOwner возвращается, когда отменить бронирование пытается не его владелец
	ErrNotOwner = errors.New("reservations: reservation belongs to another user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
