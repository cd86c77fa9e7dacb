package notificacao

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
)

// EnviarAlertaAprovacao avisa o webhook configurado que um contrato
// passou pela revisão e foi aprovado. Melhor esforço: falha só gera log.
func EnviarAlertaAprovacao(contratoID, userID uint, valor float64) {
	url := os.Getenv("WEBHOOK_ALERTA_URL")
	if url == "" {
		return
	}

	payload := map[string]any{
		"mensagem":   "Contrato aprovado",
		"contratoId": contratoID,
		"userId":     userID,
		"valor":      valor,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		slog.Warn("erro ao enviar webhook de aprovação", "contratoId", contratoID, "error", err)
		return
	}
	defer resp.Body.Close()
}
