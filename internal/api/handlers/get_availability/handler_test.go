package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AmenityBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/logger"
)

type stubUseCase struct {
	resp *getAvailability.Response
	err  error
	got  *getAvailability.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	s.got = req
	return s.resp, s.err
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil))
	return rec
}

func mustWindow(t *testing.T, text string) domain.TimeWindow {
	t.Helper()
	w, err := domain.ParseTimeWindow(text)
	require.NoError(t, err)
	return w
}

func TestHandle_SlotView(t *testing.T) {
	nine, ten := mustWindow(t, "09:00-10:00"), mustWindow(t, "10:00-11:00")
	uc := &stubUseCase{resp: &getAvailability.Response{
		AmenityID:   3,
		AmenityKind: domain.AmenityTennis,
		Date:        time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Mode:        domain.ModeSlotBased,
		Capacity:    2,
		Slots: &getAvailability.SlotAvailability{
			AvailableWindows: []domain.TimeWindow{ten},
			Windows: []getAvailability.WindowStatus{
				{Window: nine, Booked: 1, Capacity: 2, Remaining: 1, Available: false},
				{Window: ten, Booked: 0, Capacity: 2, Remaining: 2, Available: true},
			},
			BookedByStart: map[string]int{"09:00": 1},
		},
	}}

	rec := get(NewHandler(uc, logger.NewNop()), "amenityId=3&amenityType=TENNIS&date=2026-10-20")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.AmenityID)
	assert.Equal(t, "TENNIS", uc.got.AmenityKind)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.IsDayBased)
	assert.Equal(t, []string{"10:00-11:00"}, body.AvailableSlots)
	assert.Equal(t, map[string]int{"09:00": 1}, body.BookedSlots)
	require.Len(t, body.Windows, 2)
	assert.Equal(t, 1, body.Windows[0].Remaining)
	assert.Nil(t, body.IsBooked)
}

func TestHandle_DayView(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailability.Response{
		AmenityID:   8,
		AmenityKind: domain.AmenityHall,
		Date:        time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Mode:        domain.ModeDayBased,
		Capacity:    1,
		Day:         &getAvailability.DayStatus{TakenCount: 1, Capacity: 1, Free: false, IsBooked: true},
	}}

	rec := get(NewHandler(uc, logger.NewNop()), "amenityId=8&amenityType=HALL&date=2026-10-20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"amenityId": 8,
		"amenityType": "HALL",
		"date": "2026-10-20",
		"isDayBased": true,
		"capacity": 1,
		"isBooked": true,
		"bookingCount": 1,
		"free": false
	}`, rec.Body.String())
}

func TestHandle_BadQuery(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	for _, query := range []string{
		"amenityType=GYM&date=2026-10-20",
		"amenityId=x&amenityType=GYM&date=2026-10-20",
		"amenityId=1&amenityType=GYM&date=20-10-2026",
	} {
		rec := get(h, query)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
	assert.Nil(t, uc.got)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown kind", getAvailability.ErrUnknownAmenityKind, http.StatusBadRequest, handlers.CodeUnknownAmenityKind},
		{"invalid input", getAvailability.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidInput},
		{"internal", errors.New("db down"), http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), "amenityId=1&amenityType=SAUNA&date=2026-10-20")

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
