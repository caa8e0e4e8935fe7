package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityBookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgNotOwner             = "можно отменить только своё бронирование"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{bookingId} - Unauthorized request")
		handlers.RespondUnauthorized(w)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("DELETE /bookings/{bookingId} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	err = h.service.Cancel(r.Context(), reservationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrNotFound):
			h.logger.Warn("DELETE /bookings/{bookingId} - Reservation not found: id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrNotOwner):
			h.logger.Warn("DELETE /bookings/{bookingId} - Not owner: id=%d, user_id=%d", reservationID, userID)
			handlers.RespondRejection(w, http.StatusForbidden, handlers.CodeNotOwner, msgNotOwner)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("DELETE /bookings/{bookingId} - Failed to cancel reservation: id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{bookingId} - Reservation cancelled: id=%d, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
