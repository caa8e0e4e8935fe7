package admin_list_reservations

import (
	"context"

	"github.com/m04kA/SMC-AmenityBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListAll(ctx context.Context) (*models.AdminReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
