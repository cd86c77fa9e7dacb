package contrato

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
	ListarTodos(db *gorm.DB) ([]Contrato, error)
	ListarPorUsuario(db *gorm.DB, userID uint) ([]Contrato, error)
	ListarAprovadosPorUsuario(db *gorm.DB, userID uint) ([]Contrato, error)
	AtualizarStatus(db *gorm.DB, id uint, status string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var c Contrato
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) ListarPorUsuario(db *gorm.DB, userID uint) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Where("user_id = ?", userID).Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) ListarAprovadosPorUsuario(db *gorm.DB, userID uint) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Where("user_id = ? AND status = ?", userID, StatusAprovado).Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, id uint, status string) error {
	return db.Model(&Contrato{}).Where("id = ?", id).Update("status", status).Error
}
