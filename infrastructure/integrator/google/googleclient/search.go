package googleclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPages evita laço infinito caso o provedor repita o nextPageToken
const maxPages = 1000

const campaignsQuery = `SELECT campaign.id, campaign.name, campaign.status, campaign.advertising_channel_type FROM campaign`

const campaignMetricsQuery = `SELECT campaign.id, segments.date, metrics.impressions, metrics.clicks, metrics.cost_micros, ` +
	`metrics.conversions, metrics.ctr, customer.currency_code FROM campaign WHERE segments.date BETWEEN '%s' AND '%s'`

func (c *GoogleAdsClient) SearchCampaigns(ctx context.Context, customerID, accessToken string) ([]googledomain.Row, error) {
	return c.search(ctx, customerID, campaignsQuery, accessToken)
}

func (c *GoogleAdsClient) SearchCampaignMetrics(ctx context.Context, customerID string, window domain.DateWindow, accessToken string) ([]googledomain.Row, error) {
	query := fmt.Sprintf(campaignMetricsQuery, window.Since(), window.Until())
	return c.search(ctx, customerID, query, accessToken)
}

// search percorre todas as páginas do relatório seguindo nextPageToken
func (c *GoogleAdsClient) search(ctx context.Context, customerID, query, accessToken string) ([]googledomain.Row, error) {
	customerID = NormalizeCustomerID(customerID)
	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:search", c.Cfg.Google.URL, customerID)

	rows := make([]googledomain.Row, 0)
	pageToken := ""

	for page := 0; page < maxPages; page++ {
		response, err := c.searchPage(ctx, endpoint, accessToken, googledomain.SearchRequest{
			Query:     query,
			PageToken: pageToken,
		})
		if err != nil {
			return nil, err
		}

		rows = append(rows, response.Results...)

		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"page":        page + 1,
			"rows":        len(response.Results),
		}).Debug("google ads: página recebida")

		if response.NextPageToken == "" || response.NextPageToken == pageToken {
			return rows, nil
		}
		pageToken = response.NextPageToken
	}

	return nil, &domain.ProviderError{
		Provider: domain.ProviderGoogle,
		Kind:     domain.ProviderErrorData,
		Message:  fmt.Sprintf("pagination exceeded %d pages", maxPages),
	}
}

func (c *GoogleAdsClient) searchPage(ctx context.Context, endpoint, accessToken string, body googledomain.SearchRequest) (*googledomain.SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar consulta: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", c.Cfg.Google.DeveloperToken)
	if c.Cfg.Google.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", NormalizeCustomerID(c.Cfg.Google.LoginCustomerID))
	}

	data, status, err := utils.DoRequest(c.HTTPClient, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, ctxErr
		}
		return nil, &domain.ProviderError{
			Provider: domain.ProviderGoogle,
			Kind:     domain.ProviderErrorTransient,
			Message:  err.Error(),
		}
	}

	if !utils.IsSuccessStatus(status) {
		return nil, decodeError(status, data)
	}

	var response googledomain.SearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, &domain.ProviderError{
			Provider:   domain.ProviderGoogle,
			Kind:       domain.ProviderErrorData,
			StatusCode: status,
			Message:    fmt.Sprintf("invalid search response: %v", err),
		}
	}

	return &response, nil
}

func decodeError(status int, data []byte) error {
	var errorResponse googledomain.ErrorResponse
	if err := json.Unmarshal(data, &errorResponse); err != nil || errorResponse.Error.Status == "" && errorResponse.Error.Message == "" {
		errorResponse.Error.Message = strings.TrimSpace(string(data))
	}

	providerErr := errorResponse.ToProviderError(status)

	logrus.WithFields(logrus.Fields{
		"status": status,
		"code":   providerErr.Code,
		"kind":   providerErr.Kind,
	}).Warn("google ads: erro retornado pela API")

	return providerErr
}

// NormalizeCustomerID remove os hífens do formato exibido na interface (123-456-7890)
func NormalizeCustomerID(customerID string) string {
	return strings.ReplaceAll(customerID, "-", "")
}
