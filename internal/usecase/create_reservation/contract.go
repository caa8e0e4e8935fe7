package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountByKey(ctx context.Context, amenityID int64, bookingDate time.Time, slotKey string) (int, error)
	Create(ctx context.Context, reservation *domain.Reservation, capacity int) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений о созданном бронировании.
// Реализация не должна блокировать вызывающего.
type Notifier interface {
	NotifyCreated(reservation *domain.Reservation)
}

// MetricsRecorder учёт исходов допуска
type MetricsRecorder interface {
	ObserveAdmission(amenityType, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
