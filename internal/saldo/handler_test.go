package saldo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
	"github.com/VittaCapital/api-investimentos/internal/contrato"
	"github.com/VittaCapital/api-investimentos/internal/rendimento"
)

func testHandler(db *gorm.DB) *Handler {
	h := NewHandler(db, NewService())
	h.Agora = func() time.Time { return referencia }
	return h
}

func requisitar(h http.HandlerFunc, caminho string, sessao auth.Sessao) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, caminho, nil)
	req = req.WithContext(auth.ContextoComSessao(req.Context(), sessao))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestConsultarSaldoHTTP(t *testing.T) {
	db := testDB(t)
	userID := criarUsuario(t, db)
	contratoAprovado(t, db, userID, 1000, rendimento.SeisMeses, "BANK", 30)
	h := testHandler(db)

	rec := requisitar(h.ConsultarSaldo, "/user/saldo", auth.Sessao{ID: userID, Role: auth.RoleUser})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 200.0, resp["saldo"], 1e-6)
}

func TestConsultarSaldoUsuarioInexistente(t *testing.T) {
	db := testDB(t)
	h := testHandler(db)

	rec := requisitar(h.ConsultarSaldo, "/user/saldo", auth.Sessao{ID: 999, Role: auth.RoleUser})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConsultarSaldoPrazoCorrompido(t *testing.T) {
	db := testDB(t)
	userID := criarUsuario(t, db)
	contratoAprovado(t, db, userID, 1000, rendimento.Prazo("WEEKLY"), "BANK", 30)
	h := testHandler(db)

	// prazo fora da tabela depois da validação é erro de programação
	rec := requisitar(h.ConsultarSaldo, "/user/saldo", auth.Sessao{ID: userID, Role: auth.RoleUser})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestConsultarBalanceHTTP(t *testing.T) {
	db := testDB(t)
	userID := criarUsuario(t, db)
	contratoAprovado(t, db, userID, 1000, rendimento.SeisMeses, "BANK", 30)
	contratoAprovado(t, db, userID, 500, rendimento.UmAno, contrato.MetodoSaldo, 0)
	h := testHandler(db)

	rec := requisitar(h.ConsultarBalance, "/user/balance", auth.Sessao{ID: userID, Role: auth.RoleUser})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 1500.0, resp["balance"], 1e-6)
}
