package contrato_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
	"github.com/VittaCapital/api-investimentos/internal/contrato"
	"github.com/VittaCapital/api-investimentos/internal/usuario"
)

func usuario2(t *testing.T, db *gorm.DB) usuario.Usuario {
	t.Helper()
	u := usuario.Usuario{Email: "outro@example.com", Senha: "hash", Role: auth.RoleUser}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// armazenadorFake registra o upload e devolve uma URL previsível.
type armazenadorFake struct {
	salvos []string
}

func (a *armazenadorFake) Salvar(_ context.Context, nomeOriginal, _ string, r io.Reader, _ int64) (string, error) {
	_, _ = io.ReadAll(r)
	a.salvos = append(a.salvos, nomeOriginal)
	return "http://storage.local/docs/" + nomeOriginal, nil
}

func testRouter(db *gorm.DB, docs contrato.ArmazenadorDocumento) (*mux.Router, *contrato.Service) {
	s := testService()
	h := contrato.NewHandler(db, s, docs)

	r := mux.NewRouter()
	r.HandleFunc("/contract", h.CriarContrato).Methods("POST")
	r.HandleFunc("/contract/saldo", h.CriarContratoComSaldo).Methods("POST")
	r.HandleFunc("/contract/{id}/{status}", h.AtualizarStatus).Methods("PUT")
	r.HandleFunc("/user/contract", h.ListarDoUsuario).Methods("GET")
	return r, s
}

func comSessao(req *http.Request, s auth.Sessao) *http.Request {
	return req.WithContext(auth.ContextoComSessao(req.Context(), s))
}

func TestHandlerCriarContratoJSON(t *testing.T) {
	db := testDB(t)
	u := criarUsuario(t, db, auth.RoleUser)
	r, _ := testRouter(db, nil)

	body, _ := json.Marshal(map[string]any{
		"documentString": "rg-123",
		"documentType":   "RG",
		"investmentType": "SIX_MONTHS",
		"method":         "BANK",
		"value":          1000.0,
	})
	req := comSessao(httptest.NewRequest(http.MethodPost, "/contract", bytes.NewReader(body)), u.Sessao())
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var criado contrato.Contrato
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &criado))
	assert.Equal(t, contrato.StatusPendente, criado.Status)
	assert.Equal(t, u.ID, criado.UserID)
}

func TestHandlerCriarContratoPrazoInvalido(t *testing.T) {
	db := testDB(t)
	u := criarUsuario(t, db, auth.RoleUser)
	r, _ := testRouter(db, nil)

	body, _ := json.Marshal(map[string]any{
		"documentType":   "RG",
		"investmentType": "TWO_YEARS",
		"method":         "BANK",
		"value":          1000.0,
	})
	req := comSessao(httptest.NewRequest(http.MethodPost, "/contract", bytes.NewReader(body)), u.Sessao())
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestHandlerCriarContratoComAnexo(t *testing.T) {
	db := testDB(t)
	u := criarUsuario(t, db, auth.RoleUser)
	fake := &armazenadorFake{}
	r, _ := testRouter(db, fake)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("documentType", "PDF")
	_ = mw.WriteField("investmentType", "ONE_YEAR")
	_ = mw.WriteField("method", "BANK")
	_ = mw.WriteField("value", "2500")
	fw, err := mw.CreateFormFile("documentArchive", "contrato.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4 conteudo"))
	require.NoError(t, mw.Close())

	req := comSessao(httptest.NewRequest(http.MethodPost, "/contract", &buf), u.Sessao())
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var criado contrato.Contrato
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &criado))
	assert.Equal(t, "http://storage.local/docs/contrato.pdf", criado.DocumentURL)
	assert.Equal(t, []string{"contrato.pdf"}, fake.salvos)
}

func TestHandlerCriarContratoComSaldoInsuficiente(t *testing.T) {
	db := testDB(t)
	u := criarUsuario(t, db, auth.RoleUser)
	r, _ := testRouter(db, nil)

	body, _ := json.Marshal(map[string]any{
		"documentType":   "RG",
		"investmentType": "SIX_MONTHS",
		"method":         "SALDO",
		"value":          100.0,
	})
	req := comSessao(httptest.NewRequest(http.MethodPost, "/contract/saldo", bytes.NewReader(body)), u.Sessao())
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "saldo insuficiente")
}

func TestHandlerAtualizarStatus(t *testing.T) {
	db := testDB(t)
	u := criarUsuario(t, db, auth.RoleUser)
	admin := criarUsuario(t, db, auth.RoleAdmin)
	r, s := testRouter(db, nil)

	c, err := s.Criar(db, u.ID, novoContratoValido())
	require.NoError(t, err)
	caminho := fmt.Sprintf("/contract/%d/APPROVED", c.ID)

	t.Run("usuário comum recebe 403", func(t *testing.T) {
		req := comSessao(httptest.NewRequest(http.MethodPut, caminho, nil), u.Sessao())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin aprova", func(t *testing.T) {
		req := comSessao(httptest.NewRequest(http.MethodPut, caminho, nil), admin.Sessao())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var atualizado contrato.Contrato
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &atualizado))
		assert.Equal(t, contrato.StatusAprovado, atualizado.Status)
	})

	t.Run("reaprovação recebe 400", func(t *testing.T) {
		req := comSessao(httptest.NewRequest(http.MethodPut, caminho, nil), admin.Sessao())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("contrato inexistente recebe 404", func(t *testing.T) {
		req := comSessao(httptest.NewRequest(http.MethodPut, "/contract/999/APPROVED", nil), admin.Sessao())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandlerListarDoUsuario(t *testing.T) {
	db := testDB(t)
	u1 := criarUsuario(t, db, auth.RoleUser)
	admin := criarUsuario(t, db, auth.RoleAdmin)
	u2 := usuario2(t, db)
	r, s := testRouter(db, nil)

	_, err := s.Criar(db, u1.ID, novoContratoValido())
	require.NoError(t, err)
	_, err = s.Criar(db, u2.ID, novoContratoValido())
	require.NoError(t, err)

	listar := func(sessao auth.Sessao) []contrato.Contrato {
		req := comSessao(httptest.NewRequest(http.MethodGet, "/user/contract", nil), sessao)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var lista []contrato.Contrato
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lista))
		return lista
	}

	// USER vê só os próprios, ADMIN vê tudo
	assert.Len(t, listar(u1.Sessao()), 1)
	assert.Len(t, listar(admin.Sessao()), 2)
}
