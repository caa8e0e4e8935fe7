package userservice

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityBookingService/pkg/logger"
)

type stubSource struct {
	calls   int
	session *Session
	err     error
}

func (s *stubSource) GetSession(ctx context.Context, token string) (*Session, error) {
	s.calls++
	return s.session, s.err
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestSessionCache_FallsBackWhenRedisDown(t *testing.T) {
	source := &stubSource{session: &Session{UserID: 42, Role: RoleUser}}
	cache := NewSessionCache(unreachableRedis(t), source, time.Minute, logger.NewNop())

	session, err := cache.GetSession(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, 1, source.calls)
}

func TestSessionCache_PropagatesSourceError(t *testing.T) {
	source := &stubSource{err: ErrSessionNotFound}
	cache := NewSessionCache(unreachableRedis(t), source, time.Minute, logger.NewNop())

	_, err := cache.GetSession(context.Background(), "abc")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}
