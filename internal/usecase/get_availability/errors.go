package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrUnknownAmenityKind возвращается для неизвестного вида объекта
	ErrUnknownAmenityKind = errors.New("get_availability: unknown amenity kind")

	// ErrWrongMode возвращается, когда запрошенное представление не подходит виду объекта
	ErrWrongMode = errors.New("get_availability: amenity kind does not support this view")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
