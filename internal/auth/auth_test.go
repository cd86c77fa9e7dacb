package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessaoTeste() Sessao {
	return Sessao{
		ID:       7,
		Role:     RoleUser,
		Email:    "ana@example.com",
		Username: "ana",
		Fullname: "Ana Souza",
	}
}

func TestGerarEValidarToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(sessaoTeste())
	require.NoError(t, err)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessaoTeste(), claims.Sessao)
}

func TestGerarTokenSemSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GerarToken(sessaoTeste())
	assert.Error(t, err)
}

func tokenExpirado(t *testing.T) string {
	t.Helper()
	claims := &Claims{
		Sessao: sessaoTeste(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo-de-teste"))
	require.NoError(t, err)
	return raw
}

func TestMiddlewareAutenticacao(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	var capturada Sessao
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessaoDoContexto(r)
		require.True(t, ok)
		capturada = s
		w.WriteHeader(http.StatusOK)
	})
	handler := MiddlewareAutenticacao(next)

	t.Run("sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/saldo", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token expirado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/saldo", nil)
		req.Header.Set("Authorization", "Bearer "+tokenExpirado(t))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/saldo", nil)
		req.Header.Set("Authorization", "Bearer nao-e-um-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("token válido injeta sessão", func(t *testing.T) {
		token, err := GerarToken(sessaoTeste())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/user/saldo", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, sessaoTeste(), capturada)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(next)

	t.Run("usuário comum é bloqueado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/contract/1/APPROVED", nil)
		req = req.WithContext(ContextoComSessao(req.Context(), sessaoTeste()))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passa", func(t *testing.T) {
		admin := sessaoTeste()
		admin.Role = RoleAdmin
		req := httptest.NewRequest(http.MethodPut, "/contract/1/APPROVED", nil)
		req = req.WithContext(ContextoComSessao(req.Context(), admin))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
