package tokening

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/oauth"
	oauthmocks "github.com/vfg2006/ads-sync-api/infrastructure/integrator/oauth/mocks"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newConnection(expiresAt time.Time) *domain.Connection {
	return &domain.Connection{
		ID:             "conn-1",
		WorkspaceID:    "ws-1",
		Provider:       domain.ProviderGoogle,
		AccessToken:    "old-access",
		RefreshToken:   "refresh-1",
		TokenExpiresAt: expiresAt,
		Status:         domain.ConnectionStatusActive,
	}
}

func setup(t *testing.T) (*mocks.MockConnectionRepository, *oauthmocks.MockExchanger, Service) {
	ctrl := gomock.NewController(t)
	connectionRepo := mocks.NewMockConnectionRepository(ctrl)
	exchanger := oauthmocks.NewMockExchanger(ctrl)

	svc := NewService(
		connectionRepo,
		map[domain.Provider]oauth.Exchanger{domain.ProviderGoogle: exchanger},
		0,
		WithClock(func() time.Time { return fixedNow }),
	)

	return connectionRepo, exchanger, svc
}

func TestEnsureValidToken_ExpiredTokenRefreshesOnce(t *testing.T) {
	connectionRepo, exchanger, svc := setup(t)
	conn := newConnection(fixedNow.Add(-time.Second))
	newExpiry := fixedNow.Add(time.Hour)

	exchanger.EXPECT().
		Refresh(gomock.Any(), "refresh-1").
		Return(&oauth.Token{AccessToken: "new-access", ExpiresAt: newExpiry}, nil).
		Times(1)

	connectionRepo.EXPECT().
		UpdateTokens(gomock.Any(), "conn-1", "old-access", domain.TokenUpdate{
			AccessToken: "new-access",
			ExpiresAt:   newExpiry,
		}).
		Return(true, nil).
		Times(1)

	token, err := svc.EnsureValidToken(context.Background(), conn)

	require.NoError(t, err)
	assert.Equal(t, "new-access", token)
	assert.Equal(t, newExpiry, conn.TokenExpiresAt)
	assert.Equal(t, "refresh-1", conn.RefreshToken)
}

func TestEnsureValidToken_ValidTokenDoesNotRefresh(t *testing.T) {
	_, _, svc := setup(t)
	conn := newConnection(fixedNow.Add(time.Hour))

	token, err := svc.EnsureValidToken(context.Background(), conn)

	require.NoError(t, err)
	assert.Equal(t, "old-access", token)
}

func TestEnsureValidToken_ExpiryEqualToNowRefreshes(t *testing.T) {
	connectionRepo, exchanger, svc := setup(t)
	conn := newConnection(fixedNow)

	exchanger.EXPECT().Refresh(gomock.Any(), "refresh-1").
		Return(&oauth.Token{AccessToken: "new-access", ExpiresAt: fixedNow.Add(time.Hour)}, nil)
	connectionRepo.EXPECT().UpdateTokens(gomock.Any(), "conn-1", "old-access", gomock.Any()).Return(true, nil)

	token, err := svc.EnsureValidToken(context.Background(), conn)

	require.NoError(t, err)
	assert.Equal(t, "new-access", token)
}

func TestEnsureValidToken_RotatedRefreshToken(t *testing.T) {
	connectionRepo, exchanger, svc := setup(t)
	conn := newConnection(fixedNow.Add(-time.Minute))

	exchanger.EXPECT().Refresh(gomock.Any(), "refresh-1").
		Return(&oauth.Token{AccessToken: "new-access", RefreshToken: "refresh-2", ExpiresAt: fixedNow.Add(time.Hour)}, nil)
	connectionRepo.EXPECT().
		UpdateTokens(gomock.Any(), "conn-1", "old-access", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, update domain.TokenUpdate) (bool, error) {
			assert.Equal(t, "refresh-2", update.RefreshToken)
			return true, nil
		})

	_, err := svc.EnsureValidToken(context.Background(), conn)

	require.NoError(t, err)
	assert.Equal(t, "refresh-2", conn.RefreshToken)
}

func TestEnsureValidToken_RevokedRefreshToken(t *testing.T) {
	_, exchanger, svc := setup(t)
	conn := newConnection(fixedNow.Add(-time.Second))

	exchanger.EXPECT().Refresh(gomock.Any(), "refresh-1").
		Return(nil, &oauth.RefreshError{Code: "invalid_grant", Revoked: true})

	_, err := svc.EnsureValidToken(context.Background(), conn)

	var refreshErr *TokenRefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.True(t, refreshErr.Revoked)
	assert.Equal(t, "ws-1", refreshErr.WorkspaceID)
	assert.Equal(t, "old-access", conn.AccessToken)
}

func TestEnsureValidToken_PersistFailure(t *testing.T) {
	connectionRepo, exchanger, svc := setup(t)
	conn := newConnection(fixedNow.Add(-time.Second))

	exchanger.EXPECT().Refresh(gomock.Any(), "refresh-1").
		Return(&oauth.Token{AccessToken: "new-access", ExpiresAt: fixedNow.Add(time.Hour)}, nil)
	connectionRepo.EXPECT().UpdateTokens(gomock.Any(), "conn-1", "old-access", gomock.Any()).
		Return(false, errors.New("connection reset"))

	_, err := svc.EnsureValidToken(context.Background(), conn)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistToken)
	assert.Equal(t, "old-access", conn.AccessToken)
}

func TestEnsureValidToken_LostRaceUsesPersistedToken(t *testing.T) {
	connectionRepo, exchanger, svc := setup(t)
	conn := newConnection(fixedNow.Add(-time.Second))
	winner := newConnection(fixedNow.Add(2 * time.Hour))
	winner.AccessToken = "winner-access"

	exchanger.EXPECT().Refresh(gomock.Any(), "refresh-1").
		Return(&oauth.Token{AccessToken: "loser-access", ExpiresAt: fixedNow.Add(time.Hour)}, nil)
	connectionRepo.EXPECT().UpdateTokens(gomock.Any(), "conn-1", "old-access", gomock.Any()).Return(false, nil)
	connectionRepo.EXPECT().GetActive(gomock.Any(), "ws-1", domain.ProviderGoogle).Return(winner, nil)

	token, err := svc.EnsureValidToken(context.Background(), conn)

	require.NoError(t, err)
	assert.Equal(t, "winner-access", token)
	assert.Equal(t, winner.TokenExpiresAt, conn.TokenExpiresAt)
}

func TestEnsureValidToken_LostRaceAndDisconnected(t *testing.T) {
	connectionRepo, exchanger, svc := setup(t)
	conn := newConnection(fixedNow.Add(-time.Second))

	exchanger.EXPECT().Refresh(gomock.Any(), "refresh-1").
		Return(&oauth.Token{AccessToken: "new-access", ExpiresAt: fixedNow.Add(time.Hour)}, nil)
	connectionRepo.EXPECT().UpdateTokens(gomock.Any(), "conn-1", "old-access", gomock.Any()).Return(false, nil)
	connectionRepo.EXPECT().GetActive(gomock.Any(), "ws-1", domain.ProviderGoogle).Return(nil, nil)

	_, err := svc.EnsureValidToken(context.Background(), conn)

	assert.ErrorIs(t, err, ErrConnectionDisconnected)
}

func TestEnsureValidToken_ProviderWithoutExchanger(t *testing.T) {
	_, _, svc := setup(t)
	conn := newConnection(fixedNow.Add(-time.Second))
	conn.Provider = domain.ProviderMeta

	_, err := svc.EnsureValidToken(context.Background(), conn)

	assert.ErrorIs(t, err, ErrExchangerNotConfigured)
}

func TestForceRefresh_IgnoresStoredExpiry(t *testing.T) {
	connectionRepo, exchanger, svc := setup(t)
	conn := newConnection(fixedNow.Add(time.Hour))

	exchanger.EXPECT().Refresh(gomock.Any(), "refresh-1").
		Return(&oauth.Token{AccessToken: "forced-access", ExpiresAt: fixedNow.Add(2 * time.Hour)}, nil)
	connectionRepo.EXPECT().UpdateTokens(gomock.Any(), "conn-1", "old-access", gomock.Any()).Return(true, nil)

	token, err := svc.ForceRefresh(context.Background(), conn)

	require.NoError(t, err)
	assert.Equal(t, "forced-access", token)
}
