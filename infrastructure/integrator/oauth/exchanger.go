package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const invalidGrant = "invalid_grant"

// defaultAccessTokenTTL é usado quando o provedor omite expires_in
const defaultAccessTokenTTL = time.Hour

// Token é o par renovado devolvido pelo endpoint de token do provedor.
// RefreshToken vem vazio quando o provedor não rotacionou o refresh token.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Exchanger troca um refresh token por um novo access token
type Exchanger interface {
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}

// RefreshError representa uma falha do endpoint de token
type RefreshError struct {
	StatusCode  int
	Code        string
	Description string
	Revoked     bool
	Err         error
}

func (e *RefreshError) Error() string {
	if e.Revoked {
		return fmt.Sprintf("refresh token revogado ou expirado, reconexão necessária: %s %s", e.Code, e.Description)
	}
	if e.Code != "" {
		return fmt.Sprintf("falha ao renovar token (status %d): %s %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("falha ao renovar token: %v", e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Timeout      time.Duration
}

type refreshTokenExchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
	now        func() time.Time
}

// NewRefreshTokenExchanger usa o grant refresh_token padrão (RFC 6749 §6)
func NewRefreshTokenExchanger(cfg Config) Exchanger {
	return &refreshTokenExchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		now: time.Now,
	}
}

func (e *refreshTokenExchanger) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, &RefreshError{Code: invalidGrant, Description: "refresh token vazio", Revoked: true}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)

	tokenSource := e.config.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
	})

	newToken, err := tokenSource.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			refreshErr := &RefreshError{
				Code:        retrieveErr.ErrorCode,
				Description: retrieveErr.ErrorDescription,
				Revoked:     retrieveErr.ErrorCode == invalidGrant,
				Err:         err,
			}
			if retrieveErr.Response != nil {
				refreshErr.StatusCode = retrieveErr.Response.StatusCode
			}
			return nil, refreshErr
		}
		return nil, &RefreshError{Err: err}
	}

	token := &Token{
		AccessToken: newToken.AccessToken,
		ExpiresAt:   newToken.Expiry,
	}
	if token.ExpiresAt.IsZero() {
		token.ExpiresAt = e.now().Add(defaultAccessTokenTTL)
	}

	// Verifica se o refresh token foi rotacionado
	if newToken.RefreshToken != "" && newToken.RefreshToken != refreshToken {
		token.RefreshToken = newToken.RefreshToken
	}

	logrus.WithField("expires_at", token.ExpiresAt).Debug("Token renovado com sucesso")

	return token, nil
}
