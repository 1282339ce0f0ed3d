package syncing

import (
	"errors"
	"fmt"
)

// Erros de validação: a execução não chega a ser aberta
var (
	ErrInvalidLookback    = errors.New("lookback days must be >= 0")
	ErrLookbackTooLarge   = errors.New("lookback window exceeds provider limit")
	ErrSyncAlreadyRunning = errors.New("sync already running for workspace and provider")
)

// Erros que finalizam a execução como failed
var (
	ErrConnectionMissing          = errors.New("no active connection for workspace and provider")
	ErrProviderCredentialsMissing = errors.New("provider credentials not configured")
	ErrReconnectRequired          = errors.New("reconnect required")
	ErrStorage                    = errors.New("storage error")
)

// Erros de uso do registro de execuções
var (
	ErrRunAlreadyClosed = errors.New("sync run already closed")
	ErrRunNotTerminal   = errors.New("sync run can only be closed as completed or failed")
)

type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindAuth          ErrorKind = "auth"
	KindAccount       ErrorKind = "account"
	KindStorage       ErrorKind = "storage"
)

// SyncError é o erro de nível de execução. Erros de conta (KindAccount) nunca saem do laço de contas.
type SyncError struct {
	Kind      ErrorKind
	Err       error
	AccountID string
	Details   string
}

func (e *SyncError) Error() string {
	if e.Kind == KindAccount {
		return fmt.Sprintf("account %s failed: %v", e.AccountID, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(kind ErrorKind, err error, details string) *SyncError {
	return &SyncError{
		Kind:    kind,
		Err:     err,
		Details: details,
	}
}

func NewAccountError(accountID string, err error) *SyncError {
	return &SyncError{
		Kind:      KindAccount,
		Err:       err,
		AccountID: accountID,
	}
}

// KindOf retorna a classificação de um erro devolvido por Sync
func KindOf(err error) (ErrorKind, bool) {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind, true
	}
	return "", false
}
