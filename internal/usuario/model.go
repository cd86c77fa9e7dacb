package usuario

import (
	"time"

	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
)

// Usuario é o titular dos contratos de investimento.
type Usuario struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `json:"username"`
	Senha    string `gorm:"not null" json:"-"`
	Fullname string `json:"fullname"`
	Telefone string `json:"phone"`
	Role     string `gorm:"size:20;not null;default:'USER'" json:"role"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Sessao monta a identidade que vai para o token JWT.
func (u *Usuario) Sessao() auth.Sessao {
	return auth.Sessao{
		ID:       u.ID,
		Role:     u.Role,
		Email:    u.Email,
		Username: u.Username,
		Fullname: u.Fullname,
	}
}
