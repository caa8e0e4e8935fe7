package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/psqlbuilder"
)

const tableName = "reservations"

// Коды ошибок PostgreSQL, означающие проигранную гонку за место
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

var selectColumns = []string{
	"id",
	"amenity_id",
	"user_id",
	"amenity_type",
	"booking_date",
	"time_slot",
	"capacity_unit",
	"slot_start",
	"slot_end",
	"created_at",
}

// Repository репозиторий для работы с бронированиями объектов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create атомарно занимает наименьшее свободное место (1..capacity) для ключа
// (amenity_id, booking_date, slot_key) и сохраняет бронирование.
//
// Выбор места и вставка выполняются одним INSERT ... SELECT, поэтому даже без внешней
// транзакции две конкурентные вставки не получат одно и то же место: проигравшая упирается
// в уникальный индекс и получает ErrSlotConflict. Если все места заняты, возвращает
// ErrNoFreeCapacityUnit.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation, capacity int) (*domain.Reservation, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: Create - capacity=%d", ErrInvalidCapacity, capacity)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	bookingDate := reservation.BookingDate.Format(domain.DateFormat)
	slotKey := reservation.SlotKey()

	// Параметры в списке SELECT не типизируются из целевых колонок, поэтому приводим явно
	freeUnit := squirrel.Select().
		Column(squirrel.Expr("?::bigint", reservation.AmenityID)).
		Column(squirrel.Expr("?::bigint", reservation.UserID)).
		Column(squirrel.Expr("?::varchar", string(reservation.AmenityKind))).
		Column(squirrel.Expr("?::date", bookingDate)).
		Column(squirrel.Expr("?::varchar", reservation.TimeSlot)).
		Column(squirrel.Expr("?::varchar", slotKey)).
		Column("u.unit").
		Column(squirrel.Expr("?::timestamptz", reservation.SlotStart)).
		Column(squirrel.Expr("?::timestamptz", reservation.SlotEnd)).
		From(fmt.Sprintf("generate_series(1, %d) AS u(unit)", capacity)).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM "+tableName+" x WHERE x.amenity_id = ? AND x.booking_date = ?::date AND x.slot_key = ? AND x.capacity_unit = u.unit)",
			reservation.AmenityID, bookingDate, slotKey,
		)).
		OrderBy("u.unit").
		Limit(1)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"amenity_id",
			"user_id",
			"amenity_type",
			"booking_date",
			"time_slot",
			"slot_key",
			"capacity_unit",
			"slot_start",
			"slot_end",
		).
		Select(freeUnit).
		Suffix("RETURNING id, capacity_unit, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CapacityUnit,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Create - amenity=%d, date=%s, slot=%q, capacity=%d",
			ErrNoFreeCapacityUnit, reservation.AmenityID, bookingDate, slotKey, capacity)
	}
	if err != nil {
		if conflict := classifyWriteError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы отмена не гонялась сама с собой.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// CountByKey считает подтверждённые бронирования по ключу вместимости.
// Для объектов без окон slotKey пустой (domain.DayBasedSlotKey).
func (r *Repository) CountByKey(ctx context.Context, amenityID int64, bookingDate time.Time, slotKey string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{
			"amenity_id":   amenityID,
			"booking_date": bookingDate.Format(domain.DateFormat),
			"slot_key":     slotKey,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByKey - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		if conflict := classifyWriteError(err); conflict != nil {
			return 0, conflict
		}
		return 0, fmt.Errorf("%w: CountByKey - execute: %v", ErrExecQuery, err)
	}

	return count, nil
}

// GetByAmenityAndRange бронирования объекта с началом в полуинтервале [start, end)
func (r *Repository) GetByAmenityAndRange(ctx context.Context, amenityID int64, start, end time.Time) ([]domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"amenity_id": amenityID}).
		Where(squirrel.GtOrEq{"slot_start": start}).
		Where(squirrel.Lt{"slot_start": end}).
		OrderBy("slot_start ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAmenityAndRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByAmenityAndRange", query, args)
}

// GetByUserID все бронирования пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("slot_start DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByUserID", query, args)
}

// GetByAmenityID все бронирования объекта
func (r *Repository) GetByAmenityID(ctx context.Context, amenityID int64) ([]domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"amenity_id": amenityID}).
		OrderBy("slot_start DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAmenityID - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByAmenityID", query, args)
}

// GetAll все бронирования
func (r *Repository) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		OrderBy("slot_start DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetAll", query, args)
}

// Delete удаляет бронирование (отмена)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, method, query string, args []interface{}) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, method, err)
		}
		reservations = append(reservations, *reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var timeSlot sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.AmenityID,
		&reservation.UserID,
		&reservation.AmenityKind,
		&reservation.BookingDate,
		&timeSlot,
		&reservation.CapacityUnit,
		&reservation.SlotStart,
		&reservation.SlotEnd,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if timeSlot.Valid {
		slot := timeSlot.String
		reservation.TimeSlot = &slot
	}
	reservation.CreatedAt = createdAt.Time

	return &reservation, nil
}

// classifyWriteError переводит ошибки конкурентной записи в ErrSlotConflict.
// Для остальных ошибок возвращает nil.
func classifyWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case pqUniqueViolation, pqSerializationFailure, pqDeadlockDetected:
		return fmt.Errorf("%w: %s (%s)", ErrSlotConflict, pqErr.Message, pqErr.Code)
	}

	return nil
}
