package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VittaCapital/api-investimentos/internal/utils"
)

type ctxKey string

const sessaoKey ctxKey = "sessao"

// MiddlewareAutenticacao valida o bearer token e injeta a Sessao no
// contexto. Token ausente ou expirado: 401. Token inválido: 403.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			utils.RespondErro(w, http.StatusUnauthorized, "Token ausente")
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.RespondErro(w, http.StatusUnauthorized, "Token expirado")
				return
			}
			utils.RespondErro(w, http.StatusForbidden, "Token inválido")
			return
		}
		ctx := context.WithValue(r.Context(), sessaoKey, claims.Sessao)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessaoDoContexto devolve a sessão autenticada da requisição.
func SessaoDoContexto(r *http.Request) (Sessao, bool) {
	s, ok := r.Context().Value(sessaoKey).(Sessao)
	return s, ok
}

// ContextoComSessao é usado em testes para montar requisições já
// autenticadas sem passar pelo middleware.
func ContextoComSessao(ctx context.Context, s Sessao) context.Context {
	return context.WithValue(ctx, sessaoKey, s)
}

// RequireAdmin bloqueia a rota para sessões sem papel ADMIN.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessaoDoContexto(r)
		if !ok || !s.IsAdmin() {
			utils.RespondErro(w, http.StatusForbidden, "Acesso restrito a administradores")
			return
		}
		next.ServeHTTP(w, r)
	})
}
