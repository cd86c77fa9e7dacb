package saldo

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/contrato"
	"github.com/VittaCapital/api-investimentos/internal/rendimento"
)

// Service agrega o rendimento dos contratos aprovados de um usuário.
type Service struct {
	Contratos contrato.Repository
}

func NewService() *Service {
	return &Service{Contratos: contrato.NewRepository()}
}

// SaldoDisponivel é o saldo interno gastável do usuário na data de
// referência: o lucro acumulado de todos os contratos APPROVED menos
// o principal já retirado via contratos com método SALDO.
//
// O lucro conta inclusive para os contratos financiados por saldo —
// comportamento herdado do produto e mantido de propósito; a retirada
// desconta só o principal.
func (s *Service) SaldoDisponivel(db *gorm.DB, userID uint, referencia time.Time) (float64, error) {
	contratos, err := s.Contratos.ListarAprovadosPorUsuario(db, userID)
	if err != nil {
		return 0, err
	}

	var retirado float64
	for _, c := range contratos {
		if c.Method == contrato.MetodoSaldo {
			retirado += c.Value
		}
	}

	var bruto float64
	for _, c := range contratos {
		lucro, err := rendimento.LucroAcumulado(c.Value, c.StartDate, c.EndDate, c.InvestmentType, referencia)
		if err != nil {
			return 0, fmt.Errorf("contrato %d: %w", c.ID, err)
		}
		bruto += lucro
	}

	return bruto - retirado, nil
}

// TotalInvestido é a soma simples do valor dos contratos APPROVED:
// principal aplicado, sem rendimento e sem desconto de retiradas.
func (s *Service) TotalInvestido(db *gorm.DB, userID uint) (float64, error) {
	contratos, err := s.Contratos.ListarAprovadosPorUsuario(db, userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, c := range contratos {
		total += c.Value
	}
	return total, nil
}
