package meta

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *MetaIntegrator) Provider() domain.Provider {
	return domain.ProviderMeta
}

// FetchAccountData busca as campanhas e os insights diários da conta.
// O /insights só devolve dias com entrega, então dias sem atividade não viram linhas.
func (s *MetaIntegrator) FetchAccountData(ctx context.Context, accountID string, window domain.DateWindow, accessToken string) (*domain.AccountData, error) {
	campaigns, err := s.Client.GetCampaignsByAccountID(ctx, accountID, accessToken)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insights: failed to get campaigns for ad account")
		return nil, err
	}

	data := &domain.AccountData{
		Campaigns: make([]domain.Campaign, 0, len(campaigns)),
		Metrics:   make([]domain.DailyMetric, 0),
	}

	for _, campaign := range campaigns {
		data.Campaigns = append(data.Campaigns, FactoryCampaign(accountID, campaign))
	}

	if len(data.Campaigns) == 0 {
		logrus.WithField("account_id", accountID).Debug("insights: conta sem campanhas")
		return data, nil
	}

	insights, err := s.Client.GetCampaignInsightsByAccountID(ctx, accountID, window, accessToken)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insights: failed to get campaign insights")
		return nil, err
	}

	for i := range insights {
		insight := &insights[i]
		if !window.Contains(insight.DateStart) {
			logrus.WithFields(logrus.Fields{
				"account_id":  accountID,
				"campaign_id": insight.CampaignID,
				"date":        insight.DateStart,
			}).Warn("insights: linha fora da janela ignorada")
			continue
		}

		data.Metrics = append(data.Metrics, FactoryDailyMetric(accountID, insight, s.cfg.Meta.ConversionActionTypes))
	}

	return data, nil
}

func FactoryCampaign(accountID string, campaign metadomain.Campaign) domain.Campaign {
	status := campaign.EffectiveStatus
	if status == "" {
		status = campaign.Status
	}

	return domain.Campaign{
		Provider:          domain.ProviderMeta,
		ExternalAccountID: accountID,
		ExternalID:        campaign.ID,
		Name:              campaign.Name,
		Status:            status,
		Channel:           campaign.Objective,
		UpdatedAt:         time.Now(),
	}
}

// FactoryDailyMetric normaliza uma linha diária. O ctr informado pela API prevalece sobre o calculado.
func FactoryDailyMetric(accountID string, insight *metadomain.CampaignInsight, conversionActionTypes []string) domain.DailyMetric {
	metric := domain.DailyMetric{
		Provider:           domain.ProviderMeta,
		ExternalAccountID:  accountID,
		ExternalCampaignID: insight.CampaignID,
		Date:               insight.DateStart,
		Impressions:        insight.GetImpressions(),
		Clicks:             insight.GetClicks(),
		Spend:              insight.GetSpend(),
		Conversions:        insight.GetConversions(conversionActionTypes),
		Currency:           insight.AccountCurrency,
		UpdatedAt:          time.Now(),
	}
	metric.ComputeDerived()

	if ctr, ok := insight.GetCTR(); ok {
		metric.CTR = ctr
	}

	return metric
}
