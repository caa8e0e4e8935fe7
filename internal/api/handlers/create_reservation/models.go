package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-AmenityBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	AmenityID   int64   `json:"amenityId"`
	AmenityType string  `json:"amenityType"`
	BookingDate string  `json:"bookingDate"`        // "2026-10-20"
	TimeSlot    *string `json:"timeSlot,omitempty"` // "18:00-19:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64     `json:"id"`
	AmenityID    int64     `json:"amenityId"`
	UserID       int64     `json:"userId"`
	AmenityType  string    `json:"amenityType"`
	BookingDate  string    `json:"bookingDate"`
	TimeSlot     *string   `json:"timeSlot,omitempty"`
	SlotStart    time.Time `json:"slotStart"`
	SlotEnd      time.Time `json:"slotEnd"`
	CapacityUnit int       `json:"capacityUnit"`
	Capacity     int       `json:"capacity"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUseCaseRequest создает запрос use case из тела запроса
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		RequesterID: requesterID,
		AmenityID:   r.AmenityID,
		AmenityKind: r.AmenityType,
		BookingDate: date,
		TimeSlot:    r.TimeSlot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		AmenityID:    resp.AmenityID,
		UserID:       resp.UserID,
		AmenityType:  resp.AmenityKind,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		TimeSlot:     resp.TimeSlot,
		SlotStart:    resp.SlotStart,
		SlotEnd:      resp.SlotEnd,
		CapacityUnit: resp.CapacityUnit,
		Capacity:     resp.Capacity,
		CreatedAt:    resp.CreatedAt,
	}
}
