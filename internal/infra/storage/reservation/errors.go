package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotConflict возвращается, когда конкурентная запись заняла то же место
	// (unique violation, serialization failure или deadlock)
	ErrSlotConflict = errors.New("reservation.repository: capacity unit already taken")

	// ErrNoFreeCapacityUnit возвращается, когда на момент вставки свободных мест не осталось
	ErrNoFreeCapacityUnit = errors.New("reservation.repository: no free capacity unit")

	// ErrInvalidCapacity возвращается при неположительной вместимости
	ErrInvalidCapacity = errors.New("reservation.repository: capacity must be positive")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
