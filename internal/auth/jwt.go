package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis aceitos no claim "role".
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Tempo de vida do access token
const AccessTTL = 12 * time.Hour

// Sessao é a identidade verificada que viaja no token e no contexto
// da requisição. Os handlers confiam nesses campos verbatim.
type Sessao struct {
	ID       uint   `json:"id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

func (s Sessao) IsAdmin() bool { return s.Role == RoleAdmin }

type Claims struct {
	Sessao
	jwt.RegisteredClaims
}

func secretKey() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET não definida")
	}
	return []byte(secret), nil
}

// GerarToken gera um JWT HS256 com validade de 12h para a sessão.
func GerarToken(sessao Sessao) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		Sessao: sessao,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(sessao.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidarToken valida assinatura e expiração e retorna as claims.
// Erros do parser são retornados sem embrulhar para o chamador poder
// distinguir jwt.ErrTokenExpired dos demais.
func ValidarToken(tokenStr string) (*Claims, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
