package get_user_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityBookingService/internal/api/middleware"
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

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Unauthorized request")
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListForRequester(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to get reservations: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Reservations retrieved successfully: user_id=%d, count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
