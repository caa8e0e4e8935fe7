package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-AmenityBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-AmenityBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AmenityBookingService/internal/service/reservations/models"
)

// Service сервис для работы с подтверждёнными бронированиями
type Service struct {
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	notifier        Notifier
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		userClient:      userClient,
		txManager:       txManager,
		notifier:        notifier,
		location:        location,
		logger:          logger,
	}
}

// Cancel отменяет (удаляет) бронирование.
// Отменить может только владелец. Повторная отмена того же id возвращает ErrNotFound.
func (s *Service) Cancel(ctx context.Context, reservationID, requesterID int64) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, requesterID)

	if reservationID <= 0 || requesterID <= 0 {
		return fmt.Errorf("%w: reservationID and requesterID must be positive", ErrInvalidInput)
	}

	var cancelled *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
				return ErrNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - get reservation: %v", ErrInternal, err)
		}

		// 2. Проверяем владельца
		if !reservation.IsOwnedBy(requesterID) {
			s.logger.Warn("Cancel: user=%d is not the owner of reservation id=%d", requesterID, reservationID)
			return ErrNotOwner
		}

		// 3. Удаляем
		if err := s.reservationRepo.Delete(txCtx, reservationID); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%d disappeared during cancellation", reservationID)
				return ErrNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - delete reservation: %v", ErrInternal, err)
		}

		cancelled = reservation
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) || errors.Is(err, ErrInternal) {
			return err
		}
		s.logger.Error("Cancel: transaction failed for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)

	s.notifyCancelled(cancelled)

	return nil
}

// ListForRequester бронирования жильца
func (s *Service) ListForRequester(ctx context.Context, requesterID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForRequester: fetching reservations for user=%d", requesterID)

	list, err := s.reservationRepo.GetByUserID(ctx, requesterID)
	if err != nil {
		s.logger.Error("ListForRequester: repository error for user=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: ListForRequester - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForRequester: successfully fetched %d reservations for user=%d", len(list), requesterID)
	return models.FromDomainReservationList(list, s.location), nil
}

// ListAll все бронирования с профилями владельцев
func (s *Service) ListAll(ctx context.Context) (*models.AdminReservationListResponse, error) {
	s.logger.Info("ListAll: fetching all reservations")

	list, err := s.reservationRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	enriched := s.enrich(ctx, list)
	return &models.AdminReservationListResponse{Reservations: enriched, Total: len(enriched)}, nil
}

// ListByAmenity бронирования объекта с профилями владельцев
func (s *Service) ListByAmenity(ctx context.Context, amenityID int64) (*models.AdminReservationListResponse, error) {
	s.logger.Info("ListByAmenity: fetching reservations for amenity=%d", amenityID)

	if amenityID <= 0 {
		return nil, fmt.Errorf("%w: amenityID must be positive", ErrInvalidInput)
	}

	list, err := s.reservationRepo.GetByAmenityID(ctx, amenityID)
	if err != nil {
		s.logger.Error("ListByAmenity: repository error for amenity=%d: %v", amenityID, err)
		return nil, fmt.Errorf("%w: ListByAmenity - repository error: %v", ErrInternal, err)
	}

	enriched := s.enrich(ctx, list)
	return &models.AdminReservationListResponse{Reservations: enriched, Total: len(enriched)}, nil
}

// Stats сводка по всем бронированиям
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	s.logger.Info("Stats: building reservation stats")

	list, err := s.reservationRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	byType := make(map[string]int, len(domain.AmenityKinds()))
	for _, kind := range domain.AmenityKinds() {
		byType[string(kind)] = 0
	}
	for i := range list {
		byType[string(list[i].AmenityKind)]++
	}

	return &models.StatsResponse{
		TotalBookings: len(list),
		ByAmenityType: byType,
		Bookings:      s.enrich(ctx, list),
	}, nil
}

// enrich добавляет профиль владельца. Ошибка получения профиля не прерывает выдачу:
// вместо имени подставляется "Unknown".
func (s *Service) enrich(ctx context.Context, list []domain.Reservation) []models.AdminReservationResponse {
	profiles := make(map[int64]*userservice.User)
	out := make([]models.AdminReservationResponse, 0, len(list))

	for i := range list {
		r := &list[i]

		user, seen := profiles[r.UserID]
		if !seen {
			var err error
			user, err = s.userClient.GetUser(ctx, r.UserID)
			if err != nil {
				s.logger.Warn("enrich: failed to get profile for user=%d: %v", r.UserID, err)
				user = nil
			}
			profiles[r.UserID] = user
		}

		item := models.AdminReservationResponse{
			ReservationResponse: models.FromDomainReservation(r, s.location),
			Username:            models.UnknownUsername,
		}
		if user != nil {
			item.Username = user.Username
			item.Name = &user.Name
			item.FlatNo = &user.FlatNo
			item.ContactNumber = &user.ContactNumber
		}

		out = append(out, item)
	}

	return out
}

func (s *Service) notifyCancelled(reservation *domain.Reservation) {
	if s.notifier == nil || reservation == nil {
		return
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.Warn("Cancel: notification for id=%d failed: %v", reservation.ID, p)
		}
	}()

	s.notifier.NotifyCancelled(reservation)
}
