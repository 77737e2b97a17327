package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HeaderActor заголовок с идентификатором того, кто выполняет действие (клиент или сотрудник)
const HeaderActor = "X-User-ID"

type actorKey struct{}

// Actor кладет значение X-User-ID в контекст запроса. Заголовок не обязателен.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get(HeaderActor))
		if actor != "" {
			r = r.WithContext(WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor добавляет идентификатор в контекст
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает идентификатор из контекста
func GetActor(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey{}).(string)
	return actor, ok && actor != ""
}
