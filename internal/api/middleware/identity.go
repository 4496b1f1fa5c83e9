package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/tutor-booking-service/internal/api/handlers"
	"github.com/m04kA/tutor-booking-service/internal/domain"
)

const (
	// HeaderUserID идентификатор пользователя, проставляется шлюзом после аутентификации
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя: TOURIST или TUTOR
	HeaderUserRole = "X-User-Role"

	msgMissingIdentity = "authentication required"
	msgInvalidRole     = "unknown user role"
)

type callerKey struct{}

// WithCaller кладет вызывающего в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller достает вызывающего из контекста
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}

// Identity читает идентичность из заголовков шлюза
// Без идентификатора или с неизвестной ролью запрос отклоняется с 401
func Identity(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if userID == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderUserID)
				handlers.RespondUnauthorized(w, msgMissingIdentity)
				return
			}

			role, ok := domain.ParseRole(r.Header.Get(HeaderUserRole))
			if !ok {
				logger.Warn("%s %s - Invalid role %q for user=%s", r.Method, r.URL.Path, r.Header.Get(HeaderUserRole), userID)
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}

			ctx := WithCaller(r.Context(), domain.Caller{ID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
