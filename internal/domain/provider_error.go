package domain

import (
	"errors"
	"fmt"
)

type ProviderErrorKind string

const (
	// ProviderErrorAuth: token inválido/expirado ou revogado. Dispara uma renovação e nova tentativa.
	ProviderErrorAuth ProviderErrorKind = "auth"
	// ProviderErrorQuota: limite de requisições atingido
	ProviderErrorQuota ProviderErrorKind = "quota"
	// ProviderErrorData: permissão, parâmetros ou dados inválidos para a conta
	ProviderErrorData ProviderErrorKind = "data"
	// ProviderErrorTransient: 5xx ou falha de rede
	ProviderErrorTransient ProviderErrorKind = "transient"
)

// ProviderError é o erro tipado devolvido pelos clientes dos provedores
type ProviderError struct {
	Provider   Provider
	Kind       ProviderErrorKind
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s api error (%s, status %d, code %s): %s", e.Provider, e.Kind, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s api error (%s, status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
}

func (e *ProviderError) Retryable() bool {
	return e.Kind == ProviderErrorTransient
}

func providerErrorKind(err error) (ProviderErrorKind, bool) {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return "", false
}

func IsProviderAuthError(err error) bool {
	kind, ok := providerErrorKind(err)
	return ok && kind == ProviderErrorAuth
}

func IsRetryableProviderError(err error) bool {
	kind, ok := providerErrorKind(err)
	return ok && kind == ProviderErrorTransient
}
