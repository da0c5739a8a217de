package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const operatorKey ctxKey = "operator"

// OperatorHeader identifica al operador de la consola que hace el request.
// No es autenticación: solo atribución en logs.
const OperatorHeader = "X-Operator-ID"

// OperatorContext copia X-Operator-ID al contexto si viene.
func OperatorContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(OperatorHeader))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), id)))
	})
}

func WithOperator(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operatorKey, id)
}

func Operator(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorKey).(string)
	return id, ok && id != ""
}
