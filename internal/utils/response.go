package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON escreve uma resposta de sucesso em JSON.
func RespondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondErro escreve o envelope de erro padrão da API: {"error": "..."}.
func RespondErro(w http.ResponseWriter, code int, mensagem string) {
	RespondJSON(w, code, map[string]string{"error": mensagem})
}
