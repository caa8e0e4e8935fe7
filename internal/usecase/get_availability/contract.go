package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByAmenityAndRange бронирования объекта с началом в [start, end)
	GetByAmenityAndRange(ctx context.Context, amenityID int64, start, end time.Time) ([]domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
