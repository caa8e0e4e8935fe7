package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityBookingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, logger.NewNop())
}

func TestGetSession_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/session/abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId": 42, "username": "asha", "role": "ADMIN"}`))
	})

	session, err := client.GetSession(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, "asha", session.Username)
	assert.True(t, session.IsAdmin())
}

func TestGetSession_DefaultsRoleToUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"userId": 7, "username": "ravi"}`))
	})

	session, err := client.GetSession(context.Background(), "t")

	require.NoError(t, err)
	assert.Equal(t, RoleUser, session.Role)
	assert.False(t, session.IsAdmin())
}

func TestGetSession_NotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := client.GetSession(context.Background(), "expired")

		assert.ErrorIs(t, err, ErrSessionNotFound)
	}
}

func TestGetSession_EmptyTokenSkipsRequest(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.GetSession(context.Background(), "  ")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.False(t, called)
}

func TestGetSession_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetSession(context.Background(), "abc")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetUser_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 42, "username": "asha", "name": "Asha K", "flatNo": "B-204", "contactNumber": "98450"}`))
	})

	user, err := client.GetUser(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "Asha K", user.Name)
	assert.Equal(t, "B-204", user.FlatNo)
	assert.Equal(t, "98450", user.ContactNumber)
}

func TestGetUser_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetUser(context.Background(), 1)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUser_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.NewNop())

	_, err := client.GetUser(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInternal)
}
