package admin_list_by_amenity

import (
	"context"

	"github.com/m04kA/SMC-AmenityBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByAmenity(ctx context.Context, amenityID int64) (*models.AdminReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
