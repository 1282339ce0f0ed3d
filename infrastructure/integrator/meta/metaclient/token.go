package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/oauth"
	metadomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/pkg/utils"
)

// Tokens de longa duração do Meta valem 60 dias quando a resposta não informa expires_in
const defaultLongLivedTokenTTL = 60 * 24 * time.Hour

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenExchanger renova tokens de longa duração via grant fb_exchange_token.
// O Meta não emite refresh token: o token atual é trocado por um novo enquanto ainda é válido.
type TokenExchanger struct {
	cfg        config.Meta
	httpClient *http.Client
	now        func() time.Time
}

func NewTokenExchanger(cfg *config.Config) oauth.Exchanger {
	return &TokenExchanger{
		cfg: cfg.Meta,
		httpClient: &http.Client{
			Timeout: cfg.Sync.RequestTimeout,
		},
		now: time.Now,
	}
}

func (e *TokenExchanger) Refresh(ctx context.Context, currentToken string) (*oauth.Token, error) {
	if currentToken == "" {
		return nil, &oauth.RefreshError{Code: "invalid_grant", Description: "token de acesso não pode ser vazio", Revoked: true}
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", e.cfg.AppID)
	params.Add("client_secret", e.cfg.AppSecret)
	params.Add("fb_exchange_token", currentToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.TokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &oauth.RefreshError{Err: err}
	}

	body, status, err := utils.DoRequest(e.httpClient, req)
	if err != nil {
		return nil, &oauth.RefreshError{Err: fmt.Errorf("erro ao obter token de longa duração: %w", err)}
	}

	if !utils.IsSuccessStatus(status) {
		var errorResponse metadomain.ErrorResponse
		_ = json.Unmarshal(body, &errorResponse)

		logrus.Errorf("Erro obtendo token longa duração. Status: %d, Resposta: %s", status, string(body))

		return nil, &oauth.RefreshError{
			StatusCode:  status,
			Code:        errorResponse.Error.Type,
			Description: errorResponse.Error.Message,
			Revoked:     errorResponse.IsTokenExpired(),
		}
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &oauth.RefreshError{StatusCode: status, Err: fmt.Errorf("erro ao decodificar resposta: %w", err)}
	}

	if tokenResp.AccessToken == "" {
		return nil, &oauth.RefreshError{StatusCode: status, Err: fmt.Errorf("token retornado pela API é vazio")}
	}

	ttl := defaultLongLivedTokenTTL
	if tokenResp.ExpiresIn > 0 {
		ttl = time.Duration(tokenResp.ExpiresIn) * time.Second
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(int64(ttl.Seconds())))

	return &oauth.Token{
		AccessToken: tokenResp.AccessToken,
		ExpiresAt:   e.now().Add(ttl),
	}, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
