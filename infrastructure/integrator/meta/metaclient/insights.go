package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

// GetCampaignInsightsByAccountID devolve uma linha por campanha por dia com atividade na janela
func (c *MetaClient) GetCampaignInsightsByAccountID(ctx context.Context, accountID string, window domain.DateWindow, accessToken string) ([]metadomain.CampaignInsight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", window.Since(), window.Until())

	params := url.Values{}
	params.Add("level", "campaign")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("fields", "account_id,account_currency,campaign_id,campaign_name,objective,impressions,clicks,spend,ctr,actions,date_start,date_stop")
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))
	params.Add("access_token", accessToken)

	nextURL := fmt.Sprintf("%s/%s/insights?%s", c.Cfg.Meta.URL, AdAccountPath(accountID), params.Encode())

	insights := make([]metadomain.CampaignInsight, 0)
	for page := 0; page < maxPages; page++ {
		var response metadomain.InsightsResponse
		if err := c.get(ctx, nextURL, &response); err != nil {
			return nil, err
		}

		insights = append(insights, response.Data...)

		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"page":       page + 1,
			"rows":       len(response.Data),
		}).Debug("meta: página de insights recebida")

		if response.Paging.Next == "" || response.Paging.Next == nextURL {
			return insights, nil
		}
		nextURL = response.Paging.Next
	}

	return nil, &domain.ProviderError{
		Provider: domain.ProviderMeta,
		Kind:     domain.ProviderErrorData,
		Message:  fmt.Sprintf("pagination exceeded %d pages", maxPages),
	}
}
