package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "amenity-booking:session:"

// SessionSource источник сессий (обычно Client)
type SessionSource interface {
	GetSession(ctx context.Context, token string) (*Session, error)
}

// SessionCache кэширует успешные проверки сессий в Redis.
// При недоступности Redis запросы идут напрямую в источник.
// Отрицательные ответы не кэшируются.
type SessionCache struct {
	rdb    redis.Cmdable
	source SessionSource
	ttl    time.Duration
	log    Logger
}

// NewSessionCache создает кэш сессий поверх source
func NewSessionCache(rdb redis.Cmdable, source SessionSource, ttl time.Duration, log Logger) *SessionCache {
	return &SessionCache{
		rdb:    rdb,
		source: source,
		ttl:    ttl,
		log:    log,
	}
}

// GetSession возвращает сессию из кэша или из источника
func (c *SessionCache) GetSession(ctx context.Context, token string) (*Session, error) {
	key := sessionKeyPrefix + token

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var session Session
		if jsonErr := json.Unmarshal(raw, &session); jsonErr == nil {
			return &session, nil
		}
		c.log.Warn("SessionCache: corrupted entry, refetching")
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.log.Warn("SessionCache: redis get failed, falling back to UserService: %v", err)
	}

	session, err := c.source.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return session, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("SessionCache: redis set failed: %v", err)
	}

	return session, nil
}
