package tokening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/oauth"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service é o único componente autorizado a gravar os campos de token de uma conexão
type Service interface {
	// EnsureValidToken devolve o access token atual ou renova quando a expiração for <= agora
	EnsureValidToken(ctx context.Context, conn *domain.Connection) (string, error)
	// ForceRefresh renova mesmo que a expiração registrada ainda esteja no futuro.
	// Usado quando o provedor rejeita um token que parecia válido.
	ForceRefresh(ctx context.Context, conn *domain.Connection) (string, error)
}

type service struct {
	connectionRepo repository.ConnectionRepository
	exchangers     map[domain.Provider]oauth.Exchanger
	skew           time.Duration
	group          singleflight.Group
	now            func() time.Time
}

type Option func(*service)

// WithClock substitui o relógio usado para comparar a expiração
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(
	connectionRepo repository.ConnectionRepository,
	exchangers map[domain.Provider]oauth.Exchanger,
	skew time.Duration,
	opts ...Option,
) Service {
	s := &service{
		connectionRepo: connectionRepo,
		exchangers:     exchangers,
		skew:           skew,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) EnsureValidToken(ctx context.Context, conn *domain.Connection) (string, error) {
	if !conn.TokenExpired(s.now(), s.skew) {
		return conn.AccessToken, nil
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": conn.WorkspaceID,
		"provider":     conn.Provider,
		"expires_at":   conn.TokenExpiresAt,
	}).Info("Token expirado, iniciando renovação")

	return s.refresh(ctx, conn)
}

func (s *service) ForceRefresh(ctx context.Context, conn *domain.Connection) (string, error) {
	logrus.WithFields(logrus.Fields{
		"workspace_id": conn.WorkspaceID,
		"provider":     conn.Provider,
	}).Warn("Token rejeitado pelo provedor, forçando renovação")

	return s.refresh(ctx, conn)
}

// refresh compartilha uma única troca entre chamadas concorrentes para o mesmo (workspace, provider)
func (s *service) refresh(ctx context.Context, conn *domain.Connection) (string, error) {
	key := fmt.Sprintf("%s:%s", conn.WorkspaceID, conn.Provider)

	result, err, shared := s.group.Do(key, func() (any, error) {
		return s.exchange(ctx, conn)
	})
	if err != nil {
		return "", err
	}

	if shared {
		logrus.WithField("key", key).Debug("Renovação de token compartilhada com outra chamada")
	}

	refreshed := result.(domain.Connection)
	conn.AccessToken = refreshed.AccessToken
	conn.RefreshToken = refreshed.RefreshToken
	conn.TokenExpiresAt = refreshed.TokenExpiresAt

	return conn.AccessToken, nil
}

func (s *service) exchange(ctx context.Context, conn *domain.Connection) (domain.Connection, error) {
	exchanger, ok := s.exchangers[conn.Provider]
	if !ok {
		return domain.Connection{}, newTokenRefreshError(conn, ErrExchangerNotConfigured, false)
	}

	// Provedores sem refresh token (ex.: tokens de longa duração) renovam a partir do próprio access token
	grant := conn.RefreshToken
	if grant == "" {
		grant = conn.AccessToken
	}
	if grant == "" {
		return domain.Connection{}, newTokenRefreshError(conn, ErrMissingRefreshToken, true)
	}

	token, err := exchanger.Refresh(ctx, grant)
	if err != nil {
		var refreshErr *oauth.RefreshError
		revoked := errors.As(err, &refreshErr) && refreshErr.Revoked
		return domain.Connection{}, newTokenRefreshError(conn, err, revoked)
	}

	update := domain.TokenUpdate{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.ExpiresAt,
	}

	updated, err := s.connectionRepo.UpdateTokens(ctx, conn.ID, conn.AccessToken, update)
	if err != nil {
		return domain.Connection{}, newTokenRefreshError(conn, fmt.Errorf("%w: %v", ErrPersistToken, err), false)
	}

	if !updated {
		// Outro processo renovou primeiro: usar o token que ele gravou
		return s.reload(ctx, conn)
	}

	refreshed := *conn
	refreshed.AccessToken = update.AccessToken
	refreshed.TokenExpiresAt = update.ExpiresAt
	if update.RefreshToken != "" {
		refreshed.RefreshToken = update.RefreshToken
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": conn.WorkspaceID,
		"provider":     conn.Provider,
		"expires_at":   refreshed.TokenExpiresAt,
	}).Info("Token renovado e persistido")

	return refreshed, nil
}

func (s *service) reload(ctx context.Context, conn *domain.Connection) (domain.Connection, error) {
	current, err := s.connectionRepo.GetActive(ctx, conn.WorkspaceID, conn.Provider)
	if err != nil {
		return domain.Connection{}, newTokenRefreshError(conn, fmt.Errorf("%w: %v", ErrPersistToken, err), false)
	}

	if current == nil {
		return domain.Connection{}, newTokenRefreshError(conn, ErrConnectionDisconnected, true)
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": conn.WorkspaceID,
		"provider":     conn.Provider,
	}).Info("Token já renovado por outra execução, usando o valor persistido")

	return *current, nil
}
