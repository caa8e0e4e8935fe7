package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// UseCase use case получения доступности объекта на дату.
// Результат не кэшируется и каждый раз строится заново по подтверждённым бронированиям.
type UseCase struct {
	reservationRepo ReservationRepository
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		location:        location,
		logger:          logger,
	}
}

// Execute возвращает представление, соответствующее режиму допуска объекта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	rules, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: amenity=%d, type=%s, date=%s",
		req.AmenityID, rules.Kind, req.Date.Format(domain.DateFormat))

	date := domain.CalendarDate(req.Date, uc.location)

	reservations, err := uc.load(ctx, req.AmenityID, date)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		AmenityID:   req.AmenityID,
		AmenityKind: rules.Kind,
		Date:        date,
		Mode:        rules.Mode,
		Capacity:    rules.Capacity,
	}

	if rules.IsSlotBased() {
		resp.Slots = buildSlotAvailability(reservations, rules.Capacity, uc.location)
	} else {
		resp.Day = buildDayStatus(reservations, rules.Capacity)
	}

	return resp, nil
}

// AvailableWindows окна-кандидаты без бронирований в момент начала
func (uc *UseCase) AvailableWindows(ctx context.Context, req *Request) ([]domain.TimeWindow, error) {
	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Slots == nil {
		return nil, fmt.Errorf("%w: %s is booked per day", ErrWrongMode, resp.AmenityKind)
	}
	return resp.Slots.AvailableWindows, nil
}

// DayStatus занятость дня для объектов, бронируемых на весь день
func (uc *UseCase) DayStatus(ctx context.Context, req *Request) (*DayStatus, error) {
	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Day == nil {
		return nil, fmt.Errorf("%w: %s is booked per time slot", ErrWrongMode, resp.AmenityKind)
	}
	return resp.Day, nil
}

func (uc *UseCase) load(ctx context.Context, amenityID int64, date time.Time) ([]domain.Reservation, error) {
	dayStart, dayEnd := domain.DayBounds(date, uc.location)

	reservations, err := uc.reservationRepo.GetByAmenityAndRange(ctx, amenityID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for amenity=%d: %v", amenityID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	return reservations, nil
}
