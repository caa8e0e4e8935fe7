package get_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AmenityBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model.
// Для объектов с окнами заполнены AvailableSlots, BookedSlots и Windows, для дневных IsBooked, BookingCount и Free.
type AvailabilityResponse struct {
	AmenityID   int64  `json:"amenityId"`
	AmenityType string `json:"amenityType"`
	Date        string `json:"date"`
	IsDayBased  bool   `json:"isDayBased"`
	Capacity    int    `json:"capacity"`

	AvailableSlots []string        `json:"availableSlots,omitempty"`
	BookedSlots    map[string]int  `json:"bookedSlots,omitempty"`
	Windows        []WindowSummary `json:"windows,omitempty"`

	IsBooked     *bool `json:"isBooked,omitempty"`
	BookingCount *int  `json:"bookingCount,omitempty"`
	Free         *bool `json:"free,omitempty"`
}

// WindowSummary состояние окна-кандидата
type WindowSummary struct {
	TimeSlot  string `json:"timeSlot"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(amenityIDStr, amenityType, dateStr string) (*getAvailability.Request, error) {
	amenityID, err := strconv.ParseInt(amenityIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		AmenityID:   amenityID,
		AmenityKind: amenityType,
		Date:        date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		AmenityID:   resp.AmenityID,
		AmenityType: string(resp.AmenityKind),
		Date:        resp.Date.Format(domain.DateFormat),
		IsDayBased:  resp.Slots == nil,
		Capacity:    resp.Capacity,
	}

	if resp.Slots != nil {
		out.AvailableSlots = make([]string, 0, len(resp.Slots.AvailableWindows))
		for _, w := range resp.Slots.AvailableWindows {
			out.AvailableSlots = append(out.AvailableSlots, w.String())
		}

		out.BookedSlots = resp.Slots.BookedByStart

		out.Windows = make([]WindowSummary, 0, len(resp.Slots.Windows))
		for _, ws := range resp.Slots.Windows {
			out.Windows = append(out.Windows, WindowSummary{
				TimeSlot:  ws.Window.String(),
				Booked:    ws.Booked,
				Remaining: ws.Remaining,
				Available: ws.Available,
			})
		}
	}

	if resp.Day != nil {
		isBooked := resp.Day.IsBooked
		count := resp.Day.TakenCount
		free := resp.Day.Free
		out.IsBooked = &isBooked
		out.BookingCount = &count
		out.Free = &free
	}

	return out
}
