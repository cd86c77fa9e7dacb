package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/utils"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// BuscarSessao resolve a sessão atual de um usuário no banco.
// Injetada pelo main para evitar dependência do pacote usuario.
type BuscarSessao func(db *gorm.DB, userID uint) (Sessao, error)

// --- Helpers ---

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost (http://localhost) precisa ser Secure=false.
// Em produção (HTTPS), defina COOKIE_SECURE=true.
func cookieSecure() bool {
	return os.Getenv("COOKIE_SECURE") == "true"
}

func setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // cobre /auth/refresh e /auth/logout
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// --- Fluxo ---

// IssueTokensOnLogin emite o access token da sessão e grava o refresh
// token rotativo no cookie. Use após validar usuário/senha.
func IssueTokensOnLogin(db *gorm.DB, w http.ResponseWriter, sessao Sessao) (string, error) {
	access, err := GerarToken(sessao)
	if err != nil {
		return "", err
	}

	raw, err := genRaw()
	if err != nil {
		return "", err
	}

	rt := RefreshToken{
		UserID:    sessao.ID,
		FamilyID:  fmt.Sprintf("fam-%d", sessao.ID),
		Hash:      hashRaw(raw),
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	setRTCookie(w, raw, rt.ExpiresAt)
	return access, nil
}

// POST /auth/refresh
func RefreshHTTPHandler(db *gorm.DB, buscar BuscarSessao) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(RefreshCookie)
		if err != nil || c.Value == "" {
			utils.RespondErro(w, http.StatusUnauthorized, "refresh ausente")
			return
		}
		h := hashRaw(c.Value)

		var cur RefreshToken
		if err := db.Where("hash = ?", h).First(&cur).Error; err != nil {
			clearRTCookie(w)
			utils.RespondErro(w, http.StatusUnauthorized, "refresh inválido")
			return
		}
		if cur.RevokedAt != nil || time.Now().After(cur.ExpiresAt) {
			clearRTCookie(w)
			utils.RespondErro(w, http.StatusUnauthorized, "refresh expirado")
			return
		}

		// revoke atual
		now := time.Now()
		_ = db.Model(&cur).Update("revoked_at", &now).Error

		// A sessão é recarregada do banco: papel ou dados alterados
		// passam a valer no próximo access token.
		sessao, err := buscar(db, cur.UserID)
		if err != nil {
			clearRTCookie(w)
			utils.RespondErro(w, http.StatusUnauthorized, "usuário não encontrado")
			return
		}

		access, err := GerarToken(sessao)
		if err != nil {
			clearRTCookie(w)
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao gerar token")
			return
		}

		newRaw, err := genRaw()
		if err != nil {
			clearRTCookie(w)
			utils.RespondErro(w, http.StatusInternalServerError, "erro interno")
			return
		}
		newRT := RefreshToken{
			UserID:    cur.UserID,
			FamilyID:  cur.FamilyID,
			Hash:      hashRaw(newRaw),
			ExpiresAt: time.Now().Add(RefreshTTL),
		}
		if err := db.Create(&newRT).Error; err != nil {
			clearRTCookie(w)
			utils.RespondErro(w, http.StatusInternalServerError, "erro interno")
			return
		}
		setRTCookie(w, newRaw, newRT.ExpiresAt)

		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"access_token": access,
			"token_type":   "Bearer",
			"expires_in":   int(AccessTTL.Seconds()),
		})
	}
}

// POST /auth/logout
func LogoutHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
			h := hashRaw(c.Value)
			now := time.Now()
			_ = db.Model(&RefreshToken{}).Where("hash = ?", h).Update("revoked_at", &now).Error
		}
		clearRTCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
