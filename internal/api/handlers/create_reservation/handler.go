package create_reservation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-AmenityBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequest     = "некорректный формат запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgUnknownAmenityKind = "неизвестный тип объекта"
	msgPastDate           = "нельзя забронировать прошедшую дату"
	msgPastWindow         = "выбранное время уже прошло"
	msgInvalidFormat      = "некорректный формат времени, ожидается HH:MM-HH:MM"
	msgCapacityExceeded   = "все места на выбранное время заняты"
	msgSlotAlreadyTaken   = "это время только что забронировали, выберите другое"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Unauthorized request")
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, userID, &req, err)
		return
	}

	h.logger.Info("POST /bookings - Reservation created successfully: id=%d, user_id=%d, amenity_id=%d",
		result.ID, userID, result.AmenityID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, userID int64, req *CreateReservationRequest, err error) {
	var capacityErr *createReservation.CapacityExceededError

	switch {
	case errors.As(err, &capacityErr):
		h.logger.Warn("POST /bookings - Capacity exceeded: user_id=%d, amenity_id=%d, limit=%d",
			userID, req.AmenityID, capacityErr.Limit)
		handlers.RespondRejection(w, http.StatusConflict, handlers.CodeCapacityExceeded,
			fmt.Sprintf("%s (мест: %d)", msgCapacityExceeded, capacityErr.Limit))

	case errors.Is(err, createReservation.ErrCapacityExceeded):
		handlers.RespondRejection(w, http.StatusConflict, handlers.CodeCapacityExceeded, msgCapacityExceeded)

	case errors.Is(err, createReservation.ErrSlotAlreadyTaken):
		h.logger.Warn("POST /bookings - Slot already taken: user_id=%d, amenity_id=%d", userID, req.AmenityID)
		handlers.RespondRejection(w, http.StatusConflict, handlers.CodeSlotAlreadyTaken, msgSlotAlreadyTaken)

	case errors.Is(err, createReservation.ErrPastDate):
		h.logger.Warn("POST /bookings - Past date: user_id=%d, date=%s", userID, req.BookingDate)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodePastDate, msgPastDate)

	case errors.Is(err, createReservation.ErrPastWindow):
		h.logger.Warn("POST /bookings - Past window: user_id=%d, date=%s", userID, req.BookingDate)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodePastWindow, msgPastWindow)

	case errors.Is(err, createReservation.ErrInvalidFormat):
		h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, error=%v", userID, err)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeInvalidFormat, msgInvalidFormat)

	case errors.Is(err, createReservation.ErrUnknownAmenityKind):
		h.logger.Warn("POST /bookings - Unknown amenity type: %q", req.AmenityType)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeUnknownAmenityKind, msgUnknownAmenityKind)

	case errors.Is(err, createReservation.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: %v", err)
		handlers.RespondRejection(w, http.StatusBadRequest, handlers.CodeInvalidInput, msgInvalidInput)

	default:
		h.logger.Error("POST /bookings - Failed to create reservation: user_id=%d, amenity_id=%d, error=%v",
			userID, req.AmenityID, err)
		handlers.RespondInternalError(w)
	}
}
