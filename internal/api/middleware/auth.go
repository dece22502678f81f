package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nlukyanov/consultant-booking/internal/api/handlers"
)

// HeaderConsultantID заголовок аутентификации консультанта
// Заполняется API-шлюзом после проверки сессии
const HeaderConsultantID = "X-Consultant-ID"

type contextKey string

const consultantIDKey contextKey = "consultantID"

// Auth проверяет наличие и формат заголовка X-Consultant-ID
// и кладёт ID консультанта в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(HeaderConsultantID)
		if idStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderConsultantID)
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+HeaderConsultantID)
			return
		}

		ctx := context.WithValue(r.Context(), consultantIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetConsultantID извлекает ID консультанта из контекста запроса
func GetConsultantID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(consultantIDKey).(int64)
	return id, ok
}
