package admin_list_by_amenity

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
)

const (
	msgInvalidAmenityID = "некорректный ID объекта"
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

// Handle GET /api/v1/admin/bookings/amenity/{amenityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	amenityID, err := strconv.ParseInt(mux.Vars(r)["amenityId"], 10, 64)
	if err != nil || amenityID <= 0 {
		h.logger.Warn("GET /admin/bookings/amenity/{amenityId} - Invalid amenity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAmenityID)
		return
	}

	result, err := h.service.ListByAmenity(r.Context(), amenityID)
	if err != nil {
		h.logger.Error("GET /admin/bookings/amenity/{amenityId} - Failed to get reservations: amenity_id=%d, error=%v",
			amenityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings/amenity/{amenityId} - Reservations retrieved successfully: amenity_id=%d, count=%d",
		amenityID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
