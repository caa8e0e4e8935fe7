package cancel_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AmenityBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/logger"
)

type stubService struct {
	err         error
	reservation int64
	requester   int64
}

func (s *stubService) Cancel(_ context.Context, reservationID, requesterID int64) error {
	s.reservation, s.requester = reservationID, requesterID
	return s.err
}

func cancel(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+id, nil)
	req = req.WithContext(middleware.WithUser(req.Context(), 42, userservice.RoleUser))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_NoContent(t *testing.T) {
	svc := &stubService{}
	rec := cancel(NewHandler(svc, logger.NewNop()), "7")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.Equal(t, int64(7), svc.reservation)
	assert.Equal(t, int64(42), svc.requester)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", reservations.ErrNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"not owner", reservations.ErrNotOwner, http.StatusForbidden, handlers.CodeNotOwner},
		{"internal", errors.New("db down"), http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := cancel(NewHandler(&stubService{err: tt.err}, logger.NewNop()), "7")

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, cancel(h, "abc").Code)
	assert.Equal(t, http.StatusBadRequest, cancel(h, "0").Code)
	assert.Zero(t, svc.reservation)
}
