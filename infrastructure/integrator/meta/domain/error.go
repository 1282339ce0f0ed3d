package metadomain

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/ads-sync-api/internal/domain"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	IsTransient  bool   `json:"is_transient,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRateLimited cobre os limites de aplicação (4), usuário (17), página (32), chamadas (613) e conta de anúncios (80004)
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613, 80004:
		return true
	}
	return false
}

func (e *ErrorResponse) Kind(httpStatus int) domain.ProviderErrorKind {
	switch {
	case e.IsTokenExpired():
		return domain.ProviderErrorAuth
	case e.IsRateLimited():
		return domain.ProviderErrorQuota
	case e.Error.IsTransient || httpStatus >= http.StatusInternalServerError:
		return domain.ProviderErrorTransient
	case httpStatus == http.StatusUnauthorized:
		return domain.ProviderErrorAuth
	case httpStatus == http.StatusTooManyRequests:
		return domain.ProviderErrorQuota
	default:
		return domain.ProviderErrorData
	}
}

func (e *ErrorResponse) ToProviderError(httpStatus int) *domain.ProviderError {
	code := ""
	if e.Error.Code != 0 {
		code = strconv.Itoa(e.Error.Code)
	}
	if e.Error.ErrorSubcode != 0 {
		code = fmt.Sprintf("%s/%d", code, e.Error.ErrorSubcode)
	}

	return &domain.ProviderError{
		Provider:   domain.ProviderMeta,
		Kind:       e.Kind(httpStatus),
		StatusCode: httpStatus,
		Code:       code,
		Message:    e.Error.Message,
	}
}
