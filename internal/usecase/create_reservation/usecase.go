package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-AmenityBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/txmanager"
)

// UseCase use case допуска бронирования объекта
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         MetricsRecorder
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// location задаёт календарь, в котором считаются "сегодня" и границы окон. metrics может быть nil.
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет допуск бронирования.
// Подсчёт и вставка идут в сериализуемой транзакции, вставка дополнительно защищена
// уникальным индексом по номеру места, поэтому вместимость не превышается при гонке.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.ObserveAdmission(amenityLabel(req), outcome(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: user=%d, amenity=%d, type=%s, date=%s, slot=%s",
		req.RequesterID, req.AmenityID, req.AmenityKind, req.BookingDate.Format(domain.DateFormat), slotForLog(req.TimeSlot))

	rules, err := resolveRules(req.AmenityKind)
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	today := domain.Today(now, uc.location)
	bookingDate := domain.CalendarDate(req.BookingDate, uc.location)

	// 3. Дата не должна быть в прошлом
	if err := validateBookingDate(bookingDate, today); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	reservation := &domain.Reservation{
		AmenityID:   req.AmenityID,
		UserID:      req.RequesterID,
		AmenityKind: rules.Kind,
		BookingDate: bookingDate,
	}

	// 4. Окно времени и абсолютные границы
	if rules.IsSlotBased() {
		window, err := parseWindow(req.TimeSlot)
		if err != nil {
			uc.logger.Warn("CreateReservation: %v", err)
			return nil, err
		}

		start, end := window.On(bookingDate, uc.location)

		// 4.1. Сегодняшнее окно должно ещё не закончиться
		if err := validateWindowNotElapsed(bookingDate, today, end, now); err != nil {
			uc.logger.Warn("CreateReservation: %v", err)
			return nil, err
		}

		slot := window.String()
		reservation.TimeSlot = &slot
		reservation.SlotStart = start
		reservation.SlotEnd = end
	} else {
		if req.TimeSlot != nil && strings.TrimSpace(*req.TimeSlot) != "" {
			uc.logger.Info("CreateReservation: %s is booked for the whole day, ignoring slot %q",
				rules.DisplayName, *req.TimeSlot)
		}
		reservation.SlotStart, reservation.SlotEnd = domain.DayBounds(bookingDate, uc.location)
	}

	slotKey := reservation.SlotKey()

	// Переменная для хранения результата
	var result *domain.Reservation

	// 5. Проверка вместимости и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Считаем подтверждённые бронирования по ключу
		count, err := uc.reservationRepo.CountByKey(txCtx, req.AmenityID, bookingDate, slotKey)
		if err != nil {
			return uc.storageError("count reservations", err)
		}

		if count >= rules.Capacity {
			uc.logger.Warn("CreateReservation: %s amenity=%d date=%s slot=%q is full, %d/%d taken",
				rules.DisplayName, req.AmenityID, bookingDate.Format(domain.DateFormat), slotKey, count, rules.Capacity)
			return &CapacityExceededError{Kind: rules.Kind, Limit: rules.Capacity, Count: count}
		}

		uc.logger.Info("CreateReservation: capacity available, %d/%d taken", count, rules.Capacity)

		// 5.2. Занимаем свободное место
		created, err := uc.reservationRepo.Create(txCtx, reservation, rules.Capacity)
		if err != nil {
			return uc.storageError("create reservation", err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.classifyTxError(err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, unit=%d/%d",
		result.ID, result.CapacityUnit, rules.Capacity)

	// 6. Уведомление после фиксации, его ошибки на результат не влияют
	uc.notify(result)

	return &Response{
		ID:           result.ID,
		AmenityID:    result.AmenityID,
		UserID:       result.UserID,
		AmenityKind:  string(result.AmenityKind),
		BookingDate:  result.BookingDate,
		TimeSlot:     result.TimeSlot,
		SlotStart:    result.SlotStart,
		SlotEnd:      result.SlotEnd,
		CapacityUnit: result.CapacityUnit,
		Capacity:     rules.Capacity,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// storageError отделяет проигранную гонку от прочих ошибок хранилища
func (uc *UseCase) storageError(step string, err error) error {
	if errors.Is(err, reservationRepo.ErrSlotConflict) || errors.Is(err, reservationRepo.ErrNoFreeCapacityUnit) {
		uc.logger.Warn("CreateReservation: race lost on %s: %v", step, err)
		return fmt.Errorf("%w: %v", ErrSlotAlreadyTaken, err)
	}

	uc.logger.Error("CreateReservation: failed to %s: %v", step, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
}

func (uc *UseCase) classifyTxError(err error) error {
	if isUseCaseError(err) {
		return err
	}

	if errors.Is(err, txmanager.ErrSerialization) {
		uc.logger.Warn("CreateReservation: race lost on commit: %v", err)
		return fmt.Errorf("%w: %v", ErrSlotAlreadyTaken, err)
	}

	uc.logger.Error("CreateReservation: transaction failed: %v", err)
	return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
}

func (uc *UseCase) notify(reservation *domain.Reservation) {
	if uc.notifier == nil {
		return
	}

	defer func() {
		if p := recover(); p != nil {
			uc.logger.Warn("CreateReservation: notification for id=%d failed: %v", reservation.ID, p)
		}
	}()

	uc.notifier.NotifyCreated(reservation)
}

// amenityLabel значение метки amenity_type, неизвестные виды сворачиваются в "unknown"
func amenityLabel(req *Request) string {
	if req == nil {
		return "unknown"
	}
	kind, err := domain.ParseAmenityKind(req.AmenityKind)
	if err != nil {
		return "unknown"
	}
	return string(kind)
}

func slotForLog(timeSlot *string) string {
	if timeSlot == nil {
		return "-"
	}
	return *timeSlot
}
