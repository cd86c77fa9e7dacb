// Erros de domínio do ciclo de vida de contratos. A borda HTTP
// converte cada um no status correspondente.
package contrato

import "errors"

var (
	// ErrCamposObrigatorios: falta documentType, investmentType,
	// method ou value. HTTP 400.
	ErrCamposObrigatorios = errors.New("campos obrigatórios ausentes")

	// ErrValorInvalido: valor do contrato não é positivo. HTTP 400.
	ErrValorInvalido = errors.New("valor deve ser maior que zero")

	// ErrUsuarioNaoEncontrado: dono do contrato não existe. HTTP 404.
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")

	// ErrContratoNaoEncontrado: id desconhecido. HTTP 404.
	ErrContratoNaoEncontrado = errors.New("contrato não encontrado")

	// ErrContratoJaAprovado: APPROVED é terminal. HTTP 400.
	ErrContratoJaAprovado = errors.New("contrato já aprovado")

	// ErrStatusInvalido: transição só aceita APPROVED ou REJECTED.
	// HTTP 400.
	ErrStatusInvalido = errors.New("status inválido")

	// ErrSaldoInsuficiente: contrato financiado por saldo excede o
	// saldo disponível. HTTP 400.
	ErrSaldoInsuficiente = errors.New("saldo insuficiente")

	// ErrSomenteAdmin: transição de status exige papel ADMIN. HTTP 403.
	ErrSomenteAdmin = errors.New("operação restrita a administradores")
)
