package reservations

import (
	"context"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	"github.com/m04kA/SMC-AmenityBookingService/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Reservation, error)
	GetByAmenityID(ctx context.Context, amenityID int64) ([]domain.Reservation, error)
	GetAll(ctx context.Context) ([]domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений об отмене, не блокирует вызывающего
type Notifier interface {
	NotifyCancelled(reservation *domain.Reservation)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
