package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPages evita laço infinito caso a API repita o cursor
const maxPages = 1000

type Client interface {
	GetCampaignsByAccountID(ctx context.Context, accountID, accessToken string) ([]metadomain.Campaign, error)
	GetCampaignInsightsByAccountID(ctx context.Context, accountID string, window domain.DateWindow, accessToken string) ([]metadomain.CampaignInsight, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Sync.RequestTimeout,
		},
	}
}

// AdAccountPath garante o prefixo act_ exigido pela Graph API
func AdAccountPath(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}

// get executa um GET e decodifica o corpo em out, convertendo o payload de erro em ProviderError
func (c *MetaClient) get(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return err
	}

	data, status, err := utils.DoRequest(c.HTTPClient, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return ctxErr
		}
		return &domain.ProviderError{
			Provider: domain.ProviderMeta,
			Kind:     domain.ProviderErrorTransient,
			Message:  err.Error(),
		}
	}

	if !utils.IsSuccessStatus(status) {
		return decodeError(status, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return &domain.ProviderError{
			Provider:   domain.ProviderMeta,
			Kind:       domain.ProviderErrorData,
			StatusCode: status,
			Message:    fmt.Sprintf("invalid response: %v", err),
		}
	}

	return nil
}

func decodeError(status int, data []byte) error {
	var errorResponse metadomain.ErrorResponse
	if err := json.Unmarshal(data, &errorResponse); err != nil || errorResponse.Error.Message == "" {
		errorResponse.Error.Message = strings.TrimSpace(string(data))
	}

	providerErr := errorResponse.ToProviderError(status)

	logrus.WithFields(logrus.Fields{
		"status":     status,
		"code":       providerErr.Code,
		"kind":       providerErr.Kind,
		"fbtrace_id": errorResponse.Error.FBTraceID,
	}).Warn("meta: erro retornado pela API")

	return providerErr
}
