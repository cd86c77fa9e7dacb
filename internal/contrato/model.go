package contrato

import (
	"time"

	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/rendimento"
)

// Status de revisão de um contrato. PENDING é o único estado não
// terminal; APPROVED nunca sofre nova transição.
const (
	StatusPendente  = "PENDING"
	StatusAprovado  = "APPROVED"
	StatusRejeitado = "REJECTED"
)

// MetodoSaldo marca contratos financiados pelo saldo interno em vez
// de pagamento externo. Qualquer outro método é texto livre.
const MetodoSaldo = "SALDO"

// Contrato representa um compromisso de investimento de um usuário:
// valor aplicado, prazo, documento comprobatório e status de revisão.
type Contrato struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"` // startDate + prazo, nunca editada

	DocumentString string `json:"documentString"`
	DocumentURL    string `json:"documentUrl"`
	DocumentType   string `gorm:"size:100" json:"documentType"`

	InvestmentType rendimento.Prazo `gorm:"size:20;not null" json:"investmentType"`
	Method         string           `gorm:"size:50;not null" json:"method"`
	Status         string           `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Value          float64          `gorm:"not null" json:"value"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}
