package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/estatelink/viewing-service/internal/api/handlers"
)

// userIDHeader заголовок с идентификатором аутентифицированного пользователя.
// Выпуск и проверка токенов выполняются на API gateway, сюда приходит
// уже проверенная идентичность.
const userIDHeader = "X-User-ID"

type userIDCtxKey struct{}

// Auth middleware извлекает идентификатор пользователя из заголовка
// X-User-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDCtxKey{}, userID)))
	})
}

// UserIDFromContext возвращает идентификатор пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDCtxKey{}).(int64)
	return userID, ok
}
