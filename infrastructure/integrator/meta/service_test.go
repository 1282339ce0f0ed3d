package meta

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testWindow(t *testing.T) domain.DateWindow {
	window, err := domain.NewDateWindow(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	return window
}

func TestFetchAccountData(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	cfg := &config.Config{Meta: config.Meta{ConversionActionTypes: []string{"lead", "offsite_conversion.fb_pixel_purchase"}}}
	integrator := New(cfg, client)
	window := testWindow(t)

	client.EXPECT().GetCampaignsByAccountID(gomock.Any(), "123", "token").Return([]metadomain.Campaign{
		{ID: "1", Name: "Leads", Status: "ACTIVE", EffectiveStatus: "CAMPAIGN_PAUSED", Objective: "OUTCOME_LEADS"},
		{ID: "2", Name: "Sem entrega", Status: "PAUSED", Objective: "OUTCOME_SALES"},
	}, nil)

	client.EXPECT().GetCampaignInsightsByAccountID(gomock.Any(), "123", window, "token").Return([]metadomain.CampaignInsight{
		{
			CampaignID:      "1",
			DateStart:       "2024-03-09",
			Impressions:     "2000",
			Clicks:          "50",
			Spend:           "12.34",
			CTR:             "2.5",
			AccountCurrency: "BRL",
			Actions: []metadomain.Action{
				{ActionType: "lead", Value: "3"},
				{ActionType: "link_click", Value: "40"},
				{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "1"},
			},
		},
		{CampaignID: "1", DateStart: "2024-01-01", Impressions: "1"},
	}, nil)

	data, err := integrator.FetchAccountData(context.Background(), "123", window, "token")

	require.NoError(t, err)
	require.Len(t, data.Campaigns, 2)
	assert.Equal(t, "CAMPAIGN_PAUSED", data.Campaigns[0].Status)
	assert.Equal(t, "OUTCOME_LEADS", data.Campaigns[0].Channel)
	assert.Equal(t, "PAUSED", data.Campaigns[1].Status)

	require.Len(t, data.Metrics, 1)
	metric := data.Metrics[0]
	assert.Equal(t, domain.ProviderMeta, metric.Provider)
	assert.Equal(t, "2024-03-09", metric.Date)
	assert.Equal(t, int64(2000), metric.Impressions)
	assert.Equal(t, int64(50), metric.Clicks)
	assert.True(t, decimal.RequireFromString("12.34").Equal(metric.Spend))
	assert.True(t, decimal.NewFromInt(4).Equal(metric.Conversions), metric.Conversions.String())
	assert.True(t, decimal.RequireFromString("0.025").Equal(metric.CTR), metric.CTR.String())
	assert.True(t, decimal.RequireFromString("0.2468").Equal(metric.CPC), metric.CPC.String())
	assert.Equal(t, "BRL", metric.Currency)
}

func TestFetchAccountData_ZeroCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, client)

	client.EXPECT().GetCampaignsByAccountID(gomock.Any(), "123", "token").Return([]metadomain.Campaign{}, nil)

	data, err := integrator.FetchAccountData(context.Background(), "123", testWindow(t), "token")

	require.NoError(t, err)
	assert.Empty(t, data.Campaigns)
	assert.Empty(t, data.Metrics)
}

func TestFactoryDailyMetric_ConversionsFromObjective(t *testing.T) {
	insight := &metadomain.CampaignInsight{
		CampaignID:  "1",
		DateStart:   "2024-03-10",
		Objective:   "OUTCOME_LEADS",
		Impressions: "0",
		Actions:     []metadomain.Action{{ActionType: "lead", Value: "7"}},
	}

	metric := FactoryDailyMetric("123", insight, nil)

	assert.True(t, decimal.NewFromInt(7).Equal(metric.Conversions))
	assert.True(t, metric.CTR.IsZero())
	assert.True(t, metric.CPC.IsZero())
}
