package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	AmenityID   int64
	AmenityKind string
	Date        time.Time // Дата (без времени)
}

// Response доступность объекта на дату, заполнено одно из Slots / Day
type Response struct {
	AmenityID   int64
	AmenityKind domain.AmenityKind
	Date        time.Time
	Mode        domain.AdmissionMode
	Capacity    int
	Slots       *SlotAvailability
	Day         *DayStatus
}

// SlotAvailability окна для объектов с окнами
type SlotAvailability struct {
	// AvailableWindows кандидаты, в начале которых нет ни одного бронирования
	AvailableWindows []domain.TimeWindow

	// Windows состояние каждого кандидата с учётом вместимости
	Windows []WindowStatus

	// BookedByStart количество бронирований по времени начала (HH:MM), включая окна вне кандидатов
	BookedByStart map[string]int
}

// WindowStatus состояние одного окна-кандидата
type WindowStatus struct {
	Window    domain.TimeWindow
	Booked    int  // Бронирования с точно таким же окном
	Capacity  int  // Вместимость объекта на окно
	Remaining int  // Capacity - Booked, не меньше нуля
	Available bool // Нет бронирований, начинающихся в начале окна
}

// DayStatus состояние дня для объектов, бронируемых на весь день
type DayStatus struct {
	TakenCount int
	Capacity   int
	Free       bool // TakenCount < Capacity
	IsBooked   bool // Есть хотя бы одно бронирование
}
