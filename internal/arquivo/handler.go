package arquivo

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/VittaCapital/api-investimentos/internal/utils"
)

type Handler struct {
	Storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{Storage: storage}
}

// GET /download-archive/{filename}
func (h *Handler) Baixar(w http.ResponseWriter, r *http.Request) {
	nome := mux.Vars(r)["filename"]

	url, err := h.Storage.URLTemporaria(r.Context(), nome)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "arquivo não encontrado")
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
