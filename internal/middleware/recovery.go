package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/VittaCapital/api-investimentos/internal/utils"
)

// Recovery captura panics dos handlers e devolve 500 genérico sem
// vazar detalhe interno.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recuperado",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				utils.RespondErro(w, http.StatusInternalServerError, "erro interno")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
