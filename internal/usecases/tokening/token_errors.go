package tokening

import (
	"errors"
	"fmt"

	"github.com/vfg2006/ads-sync-api/internal/domain"
)

var (
	ErrExchangerNotConfigured = errors.New("token endpoint not configured for provider")
	ErrMissingRefreshToken    = errors.New("connection has no refresh token")
	ErrConnectionDisconnected = errors.New("connection was disconnected during token refresh")
	ErrPersistToken           = errors.New("error persisting refreshed token")
)

// TokenRefreshError é retornado sempre que não foi possível obter um access token válido
type TokenRefreshError struct {
	Err         error
	WorkspaceID string
	Provider    domain.Provider
	Revoked     bool
}

func (e *TokenRefreshError) Error() string {
	if e.Revoked {
		return fmt.Sprintf("reconnect required for %s (workspace %s): %v", e.Provider, e.WorkspaceID, e.Err)
	}
	return fmt.Sprintf("token refresh failed for %s (workspace %s): %v", e.Provider, e.WorkspaceID, e.Err)
}

func (e *TokenRefreshError) Unwrap() error {
	return e.Err
}

func newTokenRefreshError(conn *domain.Connection, err error, revoked bool) *TokenRefreshError {
	return &TokenRefreshError{
		Err:         err,
		WorkspaceID: conn.WorkspaceID,
		Provider:    conn.Provider,
		Revoked:     revoked,
	}
}
