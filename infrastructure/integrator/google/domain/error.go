package googledomain

import (
	"net/http"

	"github.com/vfg2006/ads-sync-api/internal/domain"
)

// ErrorResponse representa o envelope de erro da API do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Kind classifica o erro para o orquestrador
func (e *ErrorResponse) Kind(httpStatus int) domain.ProviderErrorKind {
	switch e.Error.Status {
	case "UNAUTHENTICATED":
		return domain.ProviderErrorAuth
	case "PERMISSION_DENIED", "INVALID_ARGUMENT", "NOT_FOUND", "FAILED_PRECONDITION":
		return domain.ProviderErrorData
	case "RESOURCE_EXHAUSTED":
		return domain.ProviderErrorQuota
	case "UNAVAILABLE", "INTERNAL", "DEADLINE_EXCEEDED":
		return domain.ProviderErrorTransient
	}

	switch {
	case httpStatus == http.StatusUnauthorized:
		return domain.ProviderErrorAuth
	case httpStatus == http.StatusTooManyRequests:
		return domain.ProviderErrorQuota
	case httpStatus >= http.StatusInternalServerError:
		return domain.ProviderErrorTransient
	default:
		return domain.ProviderErrorData
	}
}

func (e *ErrorResponse) ToProviderError(httpStatus int) *domain.ProviderError {
	return &domain.ProviderError{
		Provider:   domain.ProviderGoogle,
		Kind:       e.Kind(httpStatus),
		StatusCode: httpStatus,
		Code:       e.Error.Status,
		Message:    e.Error.Message,
	}
}
