package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityBookingService/internal/integrations/userservice"
)

// SessionHeader заголовок с токеном сессии
const SessionHeader = "X-SESSION-TOKEN"

const msgForbidden = "доступно только администраторам"

type contextKey int

const (
	userIDKey contextKey = iota
	roleKey
)

// SessionResolver проверка токена сессии (клиент UserService или кэш поверх него)
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*userservice.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет X-SESSION-TOKEN и кладёт ID и роль пользователя в контекст
func Auth(sessions SessionResolver, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionHeader)
			if token == "" {
				handlers.RespondUnauthorized(w)
				return
			}

			session, err := sessions.GetSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, userservice.ErrSessionNotFound) {
					log.Warn("Auth: %s %s - session not found", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w)
					return
				}
				log.Error("Auth: %s %s - session lookup failed: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, session.UserID)
			ctx = context.WithValue(ctx, roleKey, session.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только пользователей с ролью ADMIN, ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r.Context()); !ok {
			handlers.RespondUnauthorized(w)
			return
		}
		if GetRole(r.Context()) != userservice.RoleAdmin {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// GetRole роль пользователя из контекста запроса
func GetRole(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// WithUser кладёт пользователя в контекст (для тестов обработчиков)
func WithUser(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}
