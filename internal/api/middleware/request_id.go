package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader заголовок с идентификатором запроса
const requestIDHeader = "X-Request-ID"

type requestIDCtxKey struct{}

// RequestID middleware присваивает каждому запросу уникальный идентификатор.
// Если клиент передал свой X-Request-ID, он сохраняется.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDCtxKey{}, requestID)))
	})
}

// RequestIDFromContext возвращает идентификатор запроса, положенный RequestID middleware
func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDCtxKey{}).(string)
	return requestID, ok
}
