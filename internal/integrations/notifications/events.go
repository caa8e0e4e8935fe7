package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// EventType тип события бронирования
type EventType string

const (
	EventBookingCreated   EventType = "BOOKING_CREATED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
)

const (
	RoutingKeyCreated   = "booking.created"
	RoutingKeyCancelled = "booking.cancelled"
)

// Event сообщение, публикуемое в exchange бронирований
type Event struct {
	EventID     string    `json:"eventId"`
	EventType   EventType `json:"eventType"`
	BookingID   int64     `json:"bookingId"`
	AmenityID   int64     `json:"amenityId"`
	UserID      int64     `json:"userId"`
	AmenityType string    `json:"amenityType"`
	BookingDate string    `json:"bookingDate"`
	TimeSlot    *string   `json:"timeSlot,omitempty"`
	SlotStart   time.Time `json:"slotStart"`
	SlotEnd     time.Time `json:"slotEnd"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// NewEvent собирает событие по бронированию
func NewEvent(eventType EventType, r *domain.Reservation, occurredAt time.Time) Event {
	return Event{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		BookingID:   r.ID,
		AmenityID:   r.AmenityID,
		UserID:      r.UserID,
		AmenityType: string(r.AmenityKind),
		BookingDate: r.BookingDate.Format(domain.DateFormat),
		TimeSlot:    r.TimeSlot,
		SlotStart:   r.SlotStart,
		SlotEnd:     r.SlotEnd,
		OccurredAt:  occurredAt.UTC(),
	}
}

// RoutingKey ключ маршрутизации в topic exchange
func (e Event) RoutingKey() string {
	if e.EventType == EventBookingCancelled {
		return RoutingKeyCancelled
	}
	return RoutingKeyCreated
}
