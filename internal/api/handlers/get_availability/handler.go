package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-AmenityBookingService/internal/usecase/get_availability"
)

const (
	msgMissingParams      = "параметры amenityId, amenityType и date обязательны"
	msgInvalidParams      = "некорректный ID объекта или формат даты, ожидается YYYY-MM-DD"
	msgUnknownAmenityKind = "неизвестный тип объекта"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: amenityId, amenityType, date (YYYY-MM-DD), все обязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	amenityIDStr := query.Get("amenityId")
	amenityType := query.Get("amenityType")
	dateStr := query.Get("date")

	if amenityIDStr == "" || amenityType == "" || dateStr == "" {
		h.logger.Warn("GET /availability - Missing query params")
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeInvalidInput, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(amenityIDStr, amenityType, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query params: %v", err)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeInvalidInput, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrUnknownAmenityKind):
			h.logger.Warn("GET /availability - Unknown amenity type: %q", amenityType)
			handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeUnknownAmenityKind, msgUnknownAmenityKind)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeInvalidInput, msgInvalidParams)

		default:
			h.logger.Error("GET /availability - Failed to get availability: amenity_id=%d, error=%v",
				useCaseReq.AmenityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: amenity_id=%d, type=%s, date=%s",
		result.AmenityID, result.AmenityKind, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
