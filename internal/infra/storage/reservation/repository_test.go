package reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func windowReservation() *domain.Reservation {
	slot := "10:00-11:00"
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		AmenityID:   3,
		UserID:      42,
		AmenityKind: domain.AmenityTennis,
		BookingDate: date,
		TimeSlot:    &slot,
		SlotStart:   date.Add(10 * time.Hour),
		SlotEnd:     date.Add(11 * time.Hour),
	}
}

func reservationRow(id int64, slot driver.Value) []driver.Value {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, int64(3), int64(42), "TENNIS", date, slot, int64(1),
		date.Add(10 * time.Hour), date.Add(11 * time.Hour), date,
	}
}

func TestCreate_TakesLowestFreeUnit(t *testing.T) {
	repo, mock := newRepo(t)
	created := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations (amenity_id,user_id,amenity_type,booking_date,time_slot,slot_key,capacity_unit,slot_start,slot_end) SELECT")).
		WithArgs(int64(3), int64(42), "TENNIS", "2026-10-20", "10:00-11:00", "10:00-11:00",
			sqlmock.AnyArg(), sqlmock.AnyArg(), int64(3), "2026-10-20", "10:00-11:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity_unit", "created_at"}).AddRow(int64(7), int64(2), created))

	got, err := repo.Create(context.Background(), windowReservation(), 2)

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, 2, got.CapacityUnit)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UsesCapacityAsSeriesBound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM generate_series(1, 4) AS u(unit)")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity_unit", "created_at"}).AddRow(int64(1), int64(1), time.Now()))

	_, err := repo.Create(context.Background(), windowReservation(), 4)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NoFreeUnit(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity_unit", "created_at"}))

	_, err := repo.Create(context.Background(), windowReservation(), 2)

	assert.ErrorIs(t, err, ErrNoFreeCapacityUnit)
}

func TestCreate_ConcurrentWriteIsConflict(t *testing.T) {
	for _, code := range []string{pqUniqueViolation, pqSerializationFailure, pqDeadlockDetected} {
		t.Run(code, func(t *testing.T) {
			repo, mock := newRepo(t)
			mock.ExpectQuery("INSERT INTO reservations").
				WillReturnError(&pq.Error{Code: pq.ErrorCode(code), Message: "conflict"})

			_, err := repo.Create(context.Background(), windowReservation(), 2)

			assert.ErrorIs(t, err, ErrSlotConflict)
			assert.NotErrorIs(t, err, ErrExecQuery)
		})
	}
}

func TestCreate_OtherErrorIsNotConflict(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("INSERT INTO reservations").WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), windowReservation(), 2)

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotConflict)
}

func TestCreate_RejectsNonPositiveCapacity(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.Create(context.Background(), windowReservation(), 0)

	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestCountByKey(t *testing.T) {
	repo, mock := newRepo(t)
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservations WHERE amenity_id = $1 AND booking_date = $2 AND slot_key = $3")).
		WithArgs(int64(5), "2026-10-20", "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.CountByKey(context.Background(), 5, date, domain.DayBasedSlotKey)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(selectColumns))

	_, err := repo.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_LocksInsideTransaction(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(selectColumns).AddRow(reservationRow(1, "10:00-11:00")...))

	tx, err := repo.db.(*sql.DB).Begin()
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	got, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 1)

	require.NoError(t, err)
	require.NotNil(t, got.TimeSlot)
	assert.Equal(t, "10:00-11:00", *got.TimeSlot)
	assert.Equal(t, domain.AmenityTennis, got.AmenityKind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserID_ScansDayBasedAsNilSlot(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE user_id = \\$1 ORDER BY slot_start DESC, id DESC").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(selectColumns).
			AddRow(reservationRow(2, nil)...).
			AddRow(reservationRow(1, "10:00-11:00")...))

	got, err := repo.GetByUserID(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].TimeSlot)
	assert.Equal(t, domain.DayBasedSlotKey, got[0].SlotKey())
	assert.Equal(t, "10:00-11:00", got[1].SlotKey())
}

func TestGetByAmenityAndRange_HalfOpen(t *testing.T) {
	repo, mock := newRepo(t)
	start := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE amenity_id = $1 AND slot_start >= $2 AND slot_start < $3")).
		WithArgs(int64(3), start, end).
		WillReturnRows(sqlmock.NewRows(selectColumns))

	got, err := repo.GetByAmenityAndRange(context.Background(), 3, start, end)

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}
