package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/oauth"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

func newTestConfig(serverURL string) *config.Config {
	return &config.Config{
		Meta: config.Meta{
			URL:       serverURL + "/v22.0",
			TokenURL:  serverURL + "/v22.0/oauth/access_token",
			AppID:     "app-id",
			AppSecret: "app-secret",
			PageLimit: 2,
		},
		Sync: config.Sync{RequestTimeout: 5 * time.Second},
	}
}

func TestGetCampaignInsightsByAccountID_FollowsPagingNext(t *testing.T) {
	var server *httptest.Server
	calls := 0

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v22.0/act_123/insights", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after") == "" {
			query := r.URL.Query()
			assert.Equal(t, "campaign", query.Get("level"))
			assert.Equal(t, "1", query.Get("time_increment"))
			assert.Equal(t, `{"since":"2024-03-03","until":"2024-03-10"}`, query.Get("time_range"))
			assert.Equal(t, "access-token", query.Get("access_token"))

			next := fmt.Sprintf("%s/v22.0/act_123/insights?after=cursor-1&access_token=access-token", server.URL)
			fmt.Fprintf(w, `{"data":[{"campaign_id":"1","date_start":"2024-03-09","spend":"10.50","ctr":"2.5"}],"paging":{"cursors":{"after":"cursor-1"},"next":%q}}`, next)
			return
		}

		_, _ = w.Write([]byte(`{"data":[{"campaign_id":"1","date_start":"2024-03-10","spend":"3.00"}],"paging":{"cursors":{"before":"cursor-1"}}}`))
	}))
	defer server.Close()

	window, err := domain.NewDateWindow(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)

	insights, err := NewClient(newTestConfig(server.URL)).GetCampaignInsightsByAccountID(context.Background(), "123", window, "access-token")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, insights, 2)
	assert.Equal(t, "2024-03-09", insights[0].DateStart)
	assert.Equal(t, "2024-03-10", insights[1].DateStart)
}

func TestGetCampaignsByAccountID_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.ProviderErrorKind
		wantCode string
	}{
		{
			name:     "token expirado",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"Error validating access token","type":"OAuthException","code":190,"error_subcode":463}}`,
			wantKind: domain.ProviderErrorAuth,
			wantCode: "190/463",
		},
		{
			name:     "limite de chamadas do usuário",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`,
			wantKind: domain.ProviderErrorQuota,
			wantCode: "17",
		},
		{
			name:     "erro transitório",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"An unexpected error has occurred","type":"OAuthException","code":2,"is_transient":true}}`,
			wantKind: domain.ProviderErrorTransient,
			wantCode: "2",
		},
		{
			name:     "sem permissão",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"Unsupported get request","type":"GraphMethodException","code":100}}`,
			wantKind: domain.ProviderErrorData,
			wantCode: "100",
		},
		{
			name:     "erro interno",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantKind: domain.ProviderErrorTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(newTestConfig(server.URL)).GetCampaignsByAccountID(context.Background(), "act_123", "access-token")

			var providerErr *domain.ProviderError
			require.ErrorAs(t, err, &providerErr)
			assert.Equal(t, tt.wantKind, providerErr.Kind)
			assert.Equal(t, tt.wantCode, providerErr.Code)
			assert.Equal(t, domain.ProviderMeta, providerErr.Provider)
		})
	}
}

func TestTokenExchanger_Refresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "/v22.0/oauth/access_token", r.URL.Path)
		assert.Equal(t, "fb_exchange_token", query.Get("grant_type"))
		assert.Equal(t, "app-id", query.Get("client_id"))

		if query.Get("fb_exchange_token") == "expired-token" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Session has expired","type":"OAuthException","code":190,"error_subcode":463}}`))
			return
		}

		_, _ = w.Write([]byte(`{"access_token":"long-lived","token_type":"bearer","expires_in":5184000}`))
	}))
	defer server.Close()

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	exchanger := NewTokenExchanger(newTestConfig(server.URL)).(*TokenExchanger)
	exchanger.now = func() time.Time { return now }

	token, err := exchanger.Refresh(context.Background(), "current-token")
	require.NoError(t, err)
	assert.Equal(t, "long-lived", token.AccessToken)
	assert.Equal(t, now.Add(60*24*time.Hour), token.ExpiresAt)
	assert.Empty(t, token.RefreshToken)

	_, err = exchanger.Refresh(context.Background(), "expired-token")
	var refreshErr *oauth.RefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.True(t, refreshErr.Revoked)
	assert.Equal(t, http.StatusBadRequest, refreshErr.StatusCode)
}

func TestAdAccountPath(t *testing.T) {
	assert.Equal(t, "act_123", AdAccountPath("123"))
	assert.Equal(t, "act_123", AdAccountPath("act_123"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "60 dias, 0 horas e 0 minutos", FormatDuration(5184000))
}

// dropConnection fecha a conexão sem resposta, simulando uma falha de transporte
func dropConnection(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
}

func TestTransportErrorsDoNotExposeCredentials(t *testing.T) {
	server := dropConnection(t)
	defer server.Close()

	cfg := newTestConfig(server.URL)

	_, err := NewTokenExchanger(cfg).Refresh(context.Background(), "CURRENT-TOKEN")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "app-secret")
	assert.NotContains(t, err.Error(), "CURRENT-TOKEN")

	_, err = NewClient(cfg).GetCampaignsByAccountID(context.Background(), "123", "SUPER-SECRET-TOKEN")
	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderErrorTransient, providerErr.Kind)
	assert.NotContains(t, providerErr.Error(), "SUPER-SECRET-TOKEN")
	assert.Contains(t, providerErr.Error(), "/v22.0/act_123/campaigns")
}
