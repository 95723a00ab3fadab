package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/voidfloat/FLT-SchedulingService/internal/api/handlers"
)

type contextKey string

const staffIDKey contextKey = "staffID"

// StaffIDHeader заголовок с идентификатором сотрудника
const StaffIDHeader = "X-Staff-ID"

// Auth middleware для защищённых маршрутов.
// Требует валидный заголовок X-Staff-ID и кладет его значение в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(StaffIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+StaffIDHeader)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+StaffIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID возвращает ID сотрудника из контекста запроса
func GetStaffID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey).(int64)
	return id, ok
}
