package usuario

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
	"github.com/VittaCapital/api-investimentos/internal/utils"
)

// request DTOs
type criarUsuarioRequest struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// CriarUsuario cadastra um novo usuário (rota pública).
// O papel é sempre USER; admins são promovidos fora da API.
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.RespondErro(w, http.StatusBadRequest, "email e senha são obrigatórios")
		return
	}

	hash, err := utils.HashSenha(req.Password)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao processar senha")
		return
	}

	u := Usuario{
		Email:    req.Email,
		Username: req.Username,
		Senha:    hash,
		Fullname: req.Fullname,
		Telefone: req.Phone,
		Role:     auth.RoleUser,
	}
	if err := h.Repository.Criar(h.DB, &u); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar usuário")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, u)
}

// Login valida email/senha e emite o JWT de sessão mais o cookie de
// refresh rotativo.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		utils.RespondErro(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Password) {
		utils.RespondErro(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	token, err := auth.IssueTokensOnLogin(h.DB, w, u.Sessao())
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}
