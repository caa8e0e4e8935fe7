package domain

import "time"

// Reservation подтверждённое бронирование объекта.
// После сохранения не изменяется, допускается только удаление (отмена).
type Reservation struct {
	ID          int64
	AmenityID   int64
	UserID      int64
	AmenityKind AmenityKind // Денормализуется при создании
	BookingDate time.Time   // Календарная дата без времени
	TimeSlot    *string     // "HH:MM-HH:MM", только для объектов с окнами
	SlotStart   time.Time
	SlotEnd     time.Time

	// CapacityUnit номер занятого места в пределах ключа вместимости, 1..Capacity
	CapacityUnit int

	CreatedAt time.Time
}

// SlotKey ключ окна для подсчёта вместимости
func (r *Reservation) SlotKey() string {
	if r.TimeSlot == nil {
		return DayBasedSlotKey
	}
	return *r.TimeSlot
}

// IsOwnedBy проверяет, что бронирование принадлежит пользователю
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.UserID == userID
}

// StartLabel время начала (HH:MM) в зоне loc
func (r *Reservation) StartLabel(loc *time.Location) string {
	return r.SlotStart.In(loc).Format(TimeFormat)
}

// CalendarDate переносит календарную дату t (без пересчёта зоны) на полночь в зоне loc
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Today возвращает календарную дату момента now в зоне loc
func Today(now time.Time, loc *time.Location) time.Time {
	return CalendarDate(now.In(loc), loc)
}

// DayBounds возвращает [начало дня, начало следующего дня) для даты в зоне loc
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
