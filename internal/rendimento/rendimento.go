package rendimento

import (
	"errors"
	"time"
)

// Prazo é a classe de duração de um contrato de investimento.
// Define tanto a data de vencimento quanto a taxa mensal.
type Prazo string

const (
	SeisMeses Prazo = "SIX_MONTHS"
	UmAno     Prazo = "ONE_YEAR"
)

// ErrPrazoInvalido indica um prazo fora da tabela de taxas.
// Depois da validação de entrada isso não deveria acontecer;
// se acontecer é erro de programação e vira 500 na borda HTTP.
var ErrPrazoInvalido = errors.New("prazo de investimento inválido")

// Taxa mensal em percentual, por mês comercial de 30 dias.
var taxaMensalPorPrazo = map[Prazo]float64{
	SeisMeses: 20,
	UmAno:     22,
}

const horasPorDia = 24

// TaxaMensal retorna a taxa mensal (%) do prazo informado.
func TaxaMensal(prazo Prazo) (float64, error) {
	taxa, ok := taxaMensalPorPrazo[prazo]
	if !ok {
		return 0, ErrPrazoInvalido
	}
	return taxa, nil
}

// PrazoValido informa se o prazo está na tabela de taxas.
func PrazoValido(prazo Prazo) bool {
	_, ok := taxaMensalPorPrazo[prazo]
	return ok
}

// DataFim calcula o vencimento de um contrato a partir do início:
// +6 meses calendário para SIX_MONTHS, +1 ano para ONE_YEAR.
func DataFim(inicio time.Time, prazo Prazo) (time.Time, error) {
	switch prazo {
	case SeisMeses:
		return inicio.AddDate(0, 6, 0), nil
	case UmAno:
		return inicio.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, ErrPrazoInvalido
	}
}

// LucroAcumulado calcula o rendimento simples pró-rata de um contrato
// até o instante de referência. O acúmulo para no vencimento: para
// qualquer referência posterior o lucro fica constante no valor cheio
// do prazo. Antes do início o lucro é zero.
//
// Dias corridos são fracionários (1 dia = 86400s, sem arredondamento)
// e a taxa diária é taxaMensal/30/100.
func LucroAcumulado(valor float64, inicio, fim time.Time, prazo Prazo, referencia time.Time) (float64, error) {
	taxa, err := TaxaMensal(prazo)
	if err != nil {
		return 0, err
	}

	fimEfetivo := referencia
	if fim.Before(referencia) {
		fimEfetivo = fim
	}

	dias := fimEfetivo.Sub(inicio).Hours() / horasPorDia
	if dias < 0 {
		dias = 0
	}

	taxaDiaria := taxa / 30 / 100
	return valor * taxaDiaria * dias, nil
}
