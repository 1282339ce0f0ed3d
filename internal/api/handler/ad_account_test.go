package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository"
	repomocks "github.com/vfg2006/ads-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/usecases/account"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestSelectedAccounts(t *testing.T) {
	const base = "/v1/workspaces/ws-1/providers/meta/accounts"

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(accounts *repomocks.MockSelectedAccountRepository, conns *repomocks.MockConnectionRepository)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "Lista contas",
			method: http.MethodGet,
			path:   base,
			setup: func(accounts *repomocks.MockSelectedAccountRepository, _ *repomocks.MockConnectionRepository) {
				accounts.EXPECT().ListSelected(gomock.Any(), "ws-1", domain.ProviderMeta).
					Return([]*domain.SelectedAccount{{ExternalID: "42"}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Seleciona conta",
			method: http.MethodPost,
			path:   base,
			body:   `{"external_id": "act_42", "currency": "BRL"}`,
			setup: func(accounts *repomocks.MockSelectedAccountRepository, conns *repomocks.MockConnectionRepository) {
				conns.EXPECT().GetActive(gomock.Any(), "ws-1", domain.ProviderMeta).
					Return(&domain.Connection{ID: "conn-1", Status: domain.ConnectionStatusActive}, nil)
				accounts.EXPECT().Select(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Seleção sem external_id",
			method:     http.MethodPost,
			path:       base,
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "Seleção sem conexão",
			method: http.MethodPost,
			path:   base,
			body:   `{"external_id": "42"}`,
			setup: func(_ *repomocks.MockSelectedAccountRepository, conns *repomocks.MockConnectionRepository) {
				conns.EXPECT().GetActive(gomock.Any(), "ws-1", domain.ProviderMeta).Return(nil, nil)
			},
			wantStatus: http.StatusFailedDependency,
			wantCode:   apiErrors.ErrConnectionNotFound,
		},
		{
			name:   "Remove conta",
			method: http.MethodDelete,
			path:   base + "/act_42",
			setup: func(accounts *repomocks.MockSelectedAccountRepository, _ *repomocks.MockConnectionRepository) {
				accounts.EXPECT().Unselect(gomock.Any(), "ws-1", domain.ProviderMeta, "42").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "Remove conta não selecionada",
			method: http.MethodDelete,
			path:   base + "/42",
			setup: func(accounts *repomocks.MockSelectedAccountRepository, _ *repomocks.MockConnectionRepository) {
				accounts.EXPECT().Unselect(gomock.Any(), "ws-1", domain.ProviderMeta, "42").Return(repository.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := repomocks.NewMockSelectedAccountRepository(ctrl)
			conns := repomocks.NewMockConnectionRepository(ctrl)
			if tt.setup != nil {
				tt.setup(accounts, conns)
			}

			service := account.NewService(accounts, conns)
			rec := serve(t, SelectedAccounts(service), clientClaims, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
		})
	}
}
