package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AdsBookingService/internal/api/handlers"
)

type ctxKey string

const ownerIDKey ctxKey = "ownerID"

// HeaderOwnerID заголовок с идентификатором владельца, проставляется
// вышестоящим API-gateway после проверки токена
const HeaderOwnerID = "X-Owner-ID"

// Auth извлекает идентификатор владельца из заголовка и кладет его в контекст.
// Запросы без валидного заголовка отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderOwnerID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderOwnerID)
			return
		}

		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+HeaderOwnerID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), ownerID)))
	})
}

// WithOwnerID кладет идентификатор владельца в контекст
func WithOwnerID(ctx context.Context, ownerID int64) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// GetOwnerID возвращает идентификатор владельца из контекста запроса
func GetOwnerID(ctx context.Context) (int64, bool) {
	ownerID, ok := ctx.Value(ownerIDKey).(int64)
	return ownerID, ok
}
