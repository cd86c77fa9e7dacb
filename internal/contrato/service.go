package contrato

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/VittaCapital/api-investimentos/internal/auth"
	"github.com/VittaCapital/api-investimentos/internal/rendimento"
	"github.com/VittaCapital/api-investimentos/internal/usuario"
)

// CalculadoraSaldo é o serviço de saldo visto pelo ciclo de vida;
// implementada por saldo.Service e injetada pelo main.
type CalculadoraSaldo interface {
	SaldoDisponivel(db *gorm.DB, userID uint, referencia time.Time) (float64, error)
}

// NovoContrato são os campos enviados na submissão.
type NovoContrato struct {
	DocumentString string
	DocumentURL    string
	DocumentType   string
	InvestmentType rendimento.Prazo
	Method         string
	Value          float64
}

// Service aplica as regras do ciclo de vida: criação pendente,
// criação financiada por saldo e transição de status por admin.
type Service struct {
	Repository Repository
	Usuarios   usuario.Repository
	Saldo      CalculadoraSaldo

	// Notificar é chamada (em goroutine própria) quando um contrato
	// é aprovado pela revisão. Opcional.
	Notificar func(Contrato)

	// Agora permite fixar o relógio nos testes.
	Agora func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewService(saldo CalculadoraSaldo) *Service {
	return &Service{
		Repository: NewRepository(),
		Usuarios:   usuario.NewRepository(),
		Saldo:      saldo,
		Agora:      time.Now,
		locks:      make(map[uint]*sync.Mutex),
	}
}

// lockUsuario devolve o mutex do usuário, criando sob demanda.
// Serializa checagem de saldo + insert do mesmo usuário.
func (s *Service) lockUsuario(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// montar valida os campos e materializa o contrato com as datas
// derivadas do prazo. O prazo é checado antes de qualquer outra
// coisa: fora da tabela de taxas não há data de fim nem rendimento.
func (s *Service) montar(db *gorm.DB, userID uint, dados NovoContrato, status string) (*Contrato, error) {
	inicio := s.Agora()
	fim, err := rendimento.DataFim(inicio, dados.InvestmentType)
	if err != nil {
		return nil, err
	}

	if dados.DocumentType == "" || dados.Method == "" || dados.Value == 0 {
		return nil, ErrCamposObrigatorios
	}
	if dados.Value < 0 {
		return nil, ErrValorInvalido
	}
	if _, err := s.Usuarios.BuscarPorID(db, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}

	documentURL := dados.DocumentURL
	if documentURL == "" {
		documentURL = dados.DocumentString
	}
	if documentURL == "" {
		documentURL = "Arquivo"
	}

	return &Contrato{
		UserID:         userID,
		StartDate:      inicio,
		EndDate:        fim,
		DocumentString: dados.DocumentString,
		DocumentURL:    documentURL,
		DocumentType:   dados.DocumentType,
		InvestmentType: dados.InvestmentType,
		Method:         dados.Method,
		Status:         status,
		Value:          dados.Value,
	}, nil
}

// Criar registra um contrato pendente de revisão.
func (s *Service) Criar(db *gorm.DB, userID uint, dados NovoContrato) (*Contrato, error) {
	c, err := s.montar(db, userID, dados, StatusPendente)
	if err != nil {
		return nil, err
	}
	if err := s.Repository.Criar(db, c); err != nil {
		return nil, fmt.Errorf("erro ao salvar contrato: %w", err)
	}
	return c, nil
}

// CriarComSaldo registra um contrato financiado pelo saldo interno.
// Nasce APPROVED: o capital de origem já passou pela revisão.
//
// A checagem de saldo e o insert rodam sob o lock do usuário e dentro
// de uma transação, para que duas submissões concorrentes não
// enxerguem ambas o mesmo saldo e estourem o disponível.
func (s *Service) CriarComSaldo(db *gorm.DB, userID uint, dados NovoContrato) (*Contrato, error) {
	// prazo checado antes de consultar saldo: depois daqui um
	// ErrPrazoInvalido só pode vir de linha corrompida no banco
	if !rendimento.PrazoValido(dados.InvestmentType) {
		return nil, rendimento.ErrPrazoInvalido
	}

	l := s.lockUsuario(userID)
	l.Lock()
	defer l.Unlock()

	var criado *Contrato
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Usuarios.BuscarPorID(tx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUsuarioNaoEncontrado
			}
			return err
		}

		disponivel, err := s.Saldo.SaldoDisponivel(tx, userID, s.Agora())
		if err != nil {
			return err
		}
		if disponivel < dados.Value {
			return ErrSaldoInsuficiente
		}

		c, err := s.montar(tx, userID, dados, StatusAprovado)
		if err != nil {
			return err
		}
		if err := s.Repository.Criar(tx, c); err != nil {
			return fmt.Errorf("erro ao salvar contrato: %w", err)
		}
		criado = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return criado, nil
}

// AtualizarStatus aplica a transição de revisão PENDING -> APPROVED
// ou PENDING -> REJECTED, exclusiva de administradores.
func (s *Service) AtualizarStatus(db *gorm.DB, id uint, novoStatus string, sessao auth.Sessao) (*Contrato, error) {
	if !sessao.IsAdmin() {
		return nil, ErrSomenteAdmin
	}

	c, err := s.Repository.BuscarPorID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContratoNaoEncontrado
		}
		return nil, err
	}

	if c.Status == StatusAprovado {
		return nil, ErrContratoJaAprovado
	}
	if novoStatus != StatusAprovado && novoStatus != StatusRejeitado {
		return nil, ErrStatusInvalido
	}

	if err := s.Repository.AtualizarStatus(db, id, novoStatus); err != nil {
		return nil, fmt.Errorf("erro ao atualizar contrato: %w", err)
	}
	c.Status = novoStatus

	if novoStatus == StatusAprovado && s.Notificar != nil {
		go s.Notificar(*c)
	}
	return c, nil
}
