package googleclient

import (
	"context"
	"net/http"

	googledomain "github.com/vfg2006/ads-sync-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

type Client interface {
	SearchCampaigns(ctx context.Context, customerID, accessToken string) ([]googledomain.Row, error)
	SearchCampaignMetrics(ctx context.Context, customerID string, window domain.DateWindow, accessToken string) ([]googledomain.Row, error)
}

type GoogleAdsClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GoogleAdsClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Sync.RequestTimeout,
		},
	}
}
