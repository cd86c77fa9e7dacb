package usuario

import (
	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
)

type Repository interface {
	Criar(db *gorm.DB, u *Usuario) error
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, u *Usuario) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	err := db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.First(&u, id).Error
	return &u, err
}

// SessaoPorID recarrega a sessão de um usuário; usada no refresh do
// access token.
func SessaoPorID(db *gorm.DB, id uint) (auth.Sessao, error) {
	u, err := NewRepository().BuscarPorID(db, id)
	if err != nil {
		return auth.Sessao{}, err
	}
	return u.Sessao(), nil
}
