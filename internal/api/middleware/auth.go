package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
)

// AgentIDHeader заголовок с ID агента, проставляется ботом-клиентом
const AgentIDHeader = "X-Agent-ID"

type contextKey string

const agentIDKey contextKey = "agentID"

// Auth извлекает ID агента из заголовка X-Agent-ID и кладет его в контекст
// Запросы без валидного заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(AgentIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+AgentIDHeader)
			return
		}

		agentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || agentID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+AgentIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), agentIDKey, agentID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAgentID возвращает ID агента из контекста запроса
func GetAgentID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(agentIDKey).(int64)
	return id, ok
}
