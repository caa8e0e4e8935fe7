package create_reservation

import "time"

// Request модель запроса на бронирование объекта
type Request struct {
	RequesterID int64     // ID жильца из сессии
	AmenityID   int64     // ID объекта
	AmenityKind string    // Вид объекта (GYM, TENNIS, ...)
	BookingDate time.Time // Дата бронирования (без времени)
	TimeSlot    *string   // Окно "HH:MM-HH:MM", обязательно для объектов с окнами
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	AmenityID    int64
	UserID       int64
	AmenityKind  string
	BookingDate  time.Time
	TimeSlot     *string // nil для объектов, бронируемых на весь день
	SlotStart    time.Time
	SlotEnd      time.Time
	CapacityUnit int // Номер занятого места
	Capacity     int // Вместимость объекта по ключу
	CreatedAt    time.Time
}
