package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/ads-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestGetCampaignMetrics(t *testing.T) {
	const base = "/v1/workspaces/ws-1/accounts/acc-1/campaigns/cmp-1/metrics"

	wantWindow := domain.DateWindow{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name       string
		path       string
		setup      func(m *repomocks.MockDailyMetricRepository)
		wantStatus int
		wantCode   string
	}{
		{
			name: "Métricas do intervalo",
			path: base + "?since=2024-03-01&until=2024-03-03",
			setup: func(m *repomocks.MockDailyMetricRepository) {
				m.EXPECT().ListByCampaign(gomock.Any(), "ws-1", "acc-1", "cmp-1", wantWindow).
					Return([]*domain.DailyMetric{
						{ExternalCampaignID: "cmp-1", Date: "2024-03-01", Spend: decimal.RequireFromString("1.25")},
					}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Data inválida",
			path:       base + "?since=01/03/2024&until=2024-03-03",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Sem until",
			path:       base + "?since=2024-03-01",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Intervalo invertido",
			path:       base + "?since=2024-03-03&until=2024-03-01",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "Intervalo maior que o permitido",
			path:       base + "?since=2022-01-01&until=2024-03-01",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "Workspace fora do escopo",
			path:       "/v1/workspaces/ws-9/accounts/acc-1/campaigns/cmp-1/metrics?since=2024-03-01&until=2024-03-03",
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrWorkspaceForbidden,
		},
		{
			name: "Erro no banco",
			path: base + "?since=2024-03-01&until=2024-03-03",
			setup: func(m *repomocks.MockDailyMetricRepository) {
				m.EXPECT().ListByCampaign(gomock.Any(), "ws-1", "acc-1", "cmp-1", wantWindow).
					Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := repomocks.NewMockDailyMetricRepository(ctrl)
			if tt.setup != nil {
				tt.setup(reader)
			}

			rec := serve(t, Metrics(reader), clientClaims, http.MethodGet, tt.path, "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			var metrics []domain.DailyMetric
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
			require.Len(t, metrics, 1)
			assert.Equal(t, "1.25", metrics[0].Spend.String())
		})
	}
}
