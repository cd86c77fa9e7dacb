package saldo

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
	"github.com/VittaCapital/api-investimentos/internal/usuario"
	"github.com/VittaCapital/api-investimentos/internal/utils"
)

type Handler struct {
	DB       *gorm.DB
	Service  *Service
	Usuarios usuario.Repository

	// Agora permite fixar o relógio nos testes.
	Agora func() time.Time
}

func NewHandler(db *gorm.DB, service *Service) *Handler {
	return &Handler{
		DB:       db,
		Service:  service,
		Usuarios: usuario.NewRepository(),
		Agora:    time.Now,
	}
}

func (h *Handler) usuarioDaSessao(w http.ResponseWriter, r *http.Request) (auth.Sessao, bool) {
	sessao, ok := auth.SessaoDoContexto(r)
	if !ok {
		utils.RespondErro(w, http.StatusUnauthorized, "sessão ausente")
		return auth.Sessao{}, false
	}
	if _, err := h.Usuarios.BuscarPorID(h.DB, sessao.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondErro(w, http.StatusNotFound, "usuário não encontrado")
		} else {
			utils.RespondErro(w, http.StatusInternalServerError, "erro interno")
		}
		return auth.Sessao{}, false
	}
	return sessao, true
}

// GET /user/saldo
func (h *Handler) ConsultarSaldo(w http.ResponseWriter, r *http.Request) {
	sessao, ok := h.usuarioDaSessao(w, r)
	if !ok {
		return
	}

	valor, err := h.Service.SaldoDisponivel(h.DB, sessao.ID, h.Agora())
	if err != nil {
		// inclui ErrPrazoInvalido vindo de linha corrompida: erro de
		// programação, não de entrada
		slog.Error("erro ao calcular saldo", "userId", sessao.ID, "error", err)
		utils.RespondErro(w, http.StatusInternalServerError, "erro interno")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]float64{"saldo": valor})
}

// GET /user/balance
func (h *Handler) ConsultarBalance(w http.ResponseWriter, r *http.Request) {
	sessao, ok := h.usuarioDaSessao(w, r)
	if !ok {
		return
	}

	total, err := h.Service.TotalInvestido(h.DB, sessao.ID)
	if err != nil {
		slog.Error("erro ao calcular balance", "userId", sessao.ID, "error", err)
		utils.RespondErro(w, http.StatusInternalServerError, "erro interno")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]float64{"balance": total})
}
