package models

import (
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// UnknownUsername подставляется, когда профиль владельца недоступен
const UnknownUsername = "Unknown"

// ReservationResponse бронирование для владельца
type ReservationResponse struct {
	ID           int64     `json:"id"`
	AmenityID    int64     `json:"amenityId"`
	UserID       int64     `json:"userId"`
	AmenityType  string    `json:"amenityType"`
	BookingDate  string    `json:"bookingDate"`        // "2026-10-20"
	TimeSlot     *string   `json:"timeSlot,omitempty"` // "18:00-19:00", нет для дневных объектов
	SlotStart    time.Time `json:"slotStart"`
	SlotEnd      time.Time `json:"slotEnd"`
	CapacityUnit int       `json:"capacityUnit"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AdminReservationResponse бронирование с профилем владельца
type AdminReservationResponse struct {
	ReservationResponse
	Username      string  `json:"username"`
	Name          *string `json:"name"`
	FlatNo        *string `json:"flatNo"`
	ContactNumber *string `json:"contactNumber"`
}

// ReservationListResponse список бронирований владельца
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"bookings"`
	Total        int                   `json:"total"`
}

// AdminReservationListResponse список бронирований для администратора
type AdminReservationListResponse struct {
	Reservations []AdminReservationResponse `json:"bookings"`
	Total        int                        `json:"total"`
}

// StatsResponse сводка для администратора
type StatsResponse struct {
	TotalBookings int                        `json:"totalBookings"`
	ByAmenityType map[string]int             `json:"byAmenityType"`
	Bookings      []AdminReservationResponse `json:"bookings"`
}

// FromDomainReservation конвертирует бронирование, моменты переводятся в зону loc
func FromDomainReservation(r *domain.Reservation, loc *time.Location) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		AmenityID:    r.AmenityID,
		UserID:       r.UserID,
		AmenityType:  string(r.AmenityKind),
		BookingDate:  r.BookingDate.Format(domain.DateFormat),
		TimeSlot:     r.TimeSlot,
		SlotStart:    r.SlotStart.In(loc),
		SlotEnd:      r.SlotEnd.In(loc),
		CapacityUnit: r.CapacityUnit,
		CreatedAt:    r.CreatedAt.In(loc),
	}
}

// FromDomainReservationList конвертирует список бронирований владельца
func FromDomainReservationList(list []domain.Reservation, loc *time.Location) *ReservationListResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, FromDomainReservation(&list[i], loc))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}
