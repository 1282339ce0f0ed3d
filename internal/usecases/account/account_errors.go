package account

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de contas selecionadas
var (
	// Erros de validação
	ErrInvalidAccountID = errors.New("invalid account id")
	ErrAccountNotFound  = errors.New("account not selected")

	// Erros de conexão
	ErrConnectionRequired = errors.New("an active connection is required to select accounts")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// AccountError é um erro com contexto adicional para contas
type AccountError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	AccountID string // ID da conta envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *AccountError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

func NewAccountError(err error, code string, details string) *AccountError {
	return &AccountError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewAccountErrorWithID(err error, code string, accountID string, details string) *AccountError {
	return &AccountError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}
