package contrato

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
	"github.com/VittaCapital/api-investimentos/internal/rendimento"
	"github.com/VittaCapital/api-investimentos/internal/utils"
)

// ArmazenadorDocumento sobe o arquivo anexado à submissão e devolve a
// URL pública do documento. Implementado por arquivo.Storage.
type ArmazenadorDocumento interface {
	Salvar(ctx context.Context, nomeOriginal, contentType string, r io.Reader, tamanho int64) (string, error)
}

type novoContratoRequest struct {
	DocumentString string  `json:"documentString"`
	DocumentType   string  `json:"documentType"`
	InvestmentType string  `json:"investmentType"`
	Method         string  `json:"method"`
	Value          float64 `json:"value"`
}

// Handler encapsula DB, service e o storage de documentos
type Handler struct {
	DB         *gorm.DB
	Service    *Service
	Documentos ArmazenadorDocumento // opcional; sem ele o anexo é ignorado
}

func NewHandler(db *gorm.DB, service *Service, documentos ArmazenadorDocumento) *Handler {
	return &Handler{DB: db, Service: service, Documentos: documentos}
}

func respondErroDominio(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSomenteAdmin):
		utils.RespondErro(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrContratoNaoEncontrado), errors.Is(err, ErrUsuarioNaoEncontrado):
		utils.RespondErro(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCamposObrigatorios),
		errors.Is(err, ErrValorInvalido),
		errors.Is(err, ErrContratoJaAprovado),
		errors.Is(err, ErrStatusInvalido),
		errors.Is(err, ErrSaldoInsuficiente),
		errors.Is(err, rendimento.ErrPrazoInvalido):
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("erro inesperado em contrato", "error", err)
		utils.RespondErro(w, http.StatusInternalServerError, "erro interno")
	}
}

// lerNovoContrato aceita multipart (submissão com anexo) ou JSON puro.
func (h *Handler) lerNovoContrato(r *http.Request) (NovoContrato, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return NovoContrato{}, ErrCamposObrigatorios
		}
		valor, _ := strconv.ParseFloat(r.FormValue("value"), 64)
		dados := NovoContrato{
			DocumentString: r.FormValue("documentString"),
			DocumentType:   r.FormValue("documentType"),
			InvestmentType: rendimento.Prazo(r.FormValue("investmentType")),
			Method:         r.FormValue("method"),
			Value:          valor,
		}
		if arquivo, header, err := r.FormFile("documentArchive"); err == nil {
			defer arquivo.Close()
			if h.Documentos != nil {
				url, err := h.Documentos.Salvar(r.Context(), header.Filename,
					header.Header.Get("Content-Type"), arquivo, header.Size)
				if err != nil {
					return NovoContrato{}, err
				}
				dados.DocumentURL = url
			}
		}
		return dados, nil
	}

	var req novoContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return NovoContrato{}, ErrCamposObrigatorios
	}
	return NovoContrato{
		DocumentString: req.DocumentString,
		DocumentType:   req.DocumentType,
		InvestmentType: rendimento.Prazo(req.InvestmentType),
		Method:         req.Method,
		Value:          req.Value,
	}, nil
}

// POST /contract
func (h *Handler) CriarContrato(w http.ResponseWriter, r *http.Request) {
	sessao, ok := auth.SessaoDoContexto(r)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "sessão ausente")
		return
	}

	dados, err := h.lerNovoContrato(r)
	if err != nil {
		respondErroDominio(w, err)
		return
	}

	c, err := h.Service.Criar(h.DB, sessao.ID, dados)
	if err != nil {
		respondErroDominio(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, c)
}

// POST /contract/saldo
func (h *Handler) CriarContratoComSaldo(w http.ResponseWriter, r *http.Request) {
	sessao, ok := auth.SessaoDoContexto(r)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "sessão ausente")
		return
	}

	var req novoContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	c, err := h.Service.CriarComSaldo(h.DB, sessao.ID, NovoContrato{
		DocumentString: req.DocumentString,
		DocumentType:   req.DocumentType,
		InvestmentType: rendimento.Prazo(req.InvestmentType),
		Method:         req.Method,
		Value:          req.Value,
	})
	if err != nil {
		respondErroDominio(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, c)
}

// PUT /contract/{id}/{status}
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	sessao, ok := auth.SessaoDoContexto(r)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "sessão ausente")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}

	c, err := h.Service.AtualizarStatus(h.DB, uint(id), vars["status"], sessao)
	if err != nil {
		respondErroDominio(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

// GET /user/contract — ADMIN vê todos, USER só os próprios.
func (h *Handler) ListarDoUsuario(w http.ResponseWriter, r *http.Request) {
	sessao, ok := auth.SessaoDoContexto(r)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "sessão ausente")
		return
	}

	var (
		contratos []Contrato
		err       error
	)
	if sessao.IsAdmin() {
		contratos, err = h.Service.Repository.ListarTodos(h.DB)
	} else {
		contratos, err = h.Service.Repository.ListarPorUsuario(h.DB, sessao.ID)
	}
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar contratos")
		return
	}
	utils.RespondJSON(w, http.StatusOK, contratos)
}
