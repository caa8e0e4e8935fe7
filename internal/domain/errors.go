package domain

import "errors"

var (
	// ErrInvalidWindowFormat возвращается, когда окно не соответствует HH:MM-HH:MM или конец не позже начала
	ErrInvalidWindowFormat = errors.New("domain: invalid time window format")

	// ErrUnknownAmenityKind возвращается для вида объекта вне перечисления
	ErrUnknownAmenityKind = errors.New("domain: unknown amenity kind")
)
