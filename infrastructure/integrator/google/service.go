package google

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

type GoogleAdsIntegrator struct {
	cfg    *config.Config
	Client googleclient.Client
}

func New(cfg *config.Config, client googleclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *GoogleAdsIntegrator) Provider() domain.Provider {
	return domain.ProviderGoogle
}

// FetchAccountData busca campanhas e métricas diárias da conta e normaliza para o formato interno.
// Dias sem atividade não aparecem no relatório e não geram linhas.
func (s *GoogleAdsIntegrator) FetchAccountData(ctx context.Context, accountID string, window domain.DateWindow, accessToken string) (*domain.AccountData, error) {
	campaignRows, err := s.Client.SearchCampaigns(ctx, accountID, accessToken)
	if err != nil {
		return nil, err
	}

	data := &domain.AccountData{
		Campaigns: make([]domain.Campaign, 0, len(campaignRows)),
		Metrics:   make([]domain.DailyMetric, 0),
	}

	for _, row := range campaignRows {
		data.Campaigns = append(data.Campaigns, FactoryCampaign(accountID, row.Campaign))
	}

	if len(data.Campaigns) == 0 {
		logrus.WithField("account_id", accountID).Debug("google ads: conta sem campanhas")
		return data, nil
	}

	metricRows, err := s.Client.SearchCampaignMetrics(ctx, accountID, window, accessToken)
	if err != nil {
		return nil, err
	}

	for _, row := range metricRows {
		if row.Segments.Date == "" || !window.Contains(row.Segments.Date) {
			logrus.WithFields(logrus.Fields{
				"account_id":  accountID,
				"campaign_id": row.Campaign.ID,
				"date":        row.Segments.Date,
			}).Warn("google ads: linha fora da janela ignorada")
			continue
		}

		data.Metrics = append(data.Metrics, FactoryDailyMetric(accountID, row))
	}

	return data, nil
}

func FactoryCampaign(accountID string, campaign googledomain.Campaign) domain.Campaign {
	return domain.Campaign{
		Provider:          domain.ProviderGoogle,
		ExternalAccountID: accountID,
		ExternalID:        campaign.ID,
		Name:              campaign.Name,
		Status:            campaign.Status,
		Channel:           campaign.AdvertisingChannelType,
		UpdatedAt:         time.Now(),
	}
}

// FactoryDailyMetric converte uma linha do relatório. cost_micros é dividido por 10^6.
func FactoryDailyMetric(accountID string, row googledomain.Row) domain.DailyMetric {
	metric := domain.DailyMetric{
		Provider:           domain.ProviderGoogle,
		ExternalAccountID:  accountID,
		ExternalCampaignID: row.Campaign.ID,
		Date:               row.Segments.Date,
		Impressions:        row.Metrics.Impressions,
		Clicks:             row.Metrics.Clicks,
		Spend:              domain.MicrosToUnits(row.Metrics.CostMicros),
		Conversions:        decimal.NewFromFloat(row.Metrics.Conversions),
		Currency:           row.Customer.CurrencyCode,
		UpdatedAt:          time.Now(),
	}
	metric.ComputeDerived()

	return metric
}
