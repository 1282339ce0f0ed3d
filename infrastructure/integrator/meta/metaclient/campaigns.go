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

func (c *MetaClient) GetCampaignsByAccountID(ctx context.Context, accountID, accessToken string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status,objective")
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageLimit))
	params.Add("access_token", accessToken)

	nextURL := fmt.Sprintf("%s/%s/campaigns?%s", c.Cfg.Meta.URL, AdAccountPath(accountID), params.Encode())

	campaigns := make([]metadomain.Campaign, 0)
	for page := 0; page < maxPages; page++ {
		var response metadomain.CampaignsResponse
		if err := c.get(ctx, nextURL, &response); err != nil {
			return nil, err
		}

		campaigns = append(campaigns, response.Data...)

		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"page":       page + 1,
			"campaigns":  len(response.Data),
		}).Debug("meta: página de campanhas recebida")

		if response.Paging.Next == "" || response.Paging.Next == nextURL {
			return campaigns, nil
		}
		nextURL = response.Paging.Next
	}

	return nil, &domain.ProviderError{
		Provider: domain.ProviderMeta,
		Kind:     domain.ProviderErrorData,
		Message:  fmt.Sprintf("pagination exceeded %d pages", maxPages),
	}
}
