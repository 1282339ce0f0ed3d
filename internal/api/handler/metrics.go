package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
	"github.com/vfg2006/ads-sync-api/pkg/utils"
)

// maxMetricsRangeDays limita o intervalo consultado por requisição
const maxMetricsRangeDays = 366

type MetricsReader interface {
	ListByCampaign(ctx context.Context, workspaceID, externalAccountID, externalCampaignID string, window domain.DateWindow) ([]*domain.DailyMetric, error)
}

// GetCampaignMetrics retorna as métricas diárias gravadas de uma campanha entre since e until
func GetCampaignMetrics(reader MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		workspaceID := params.ByName("workspace_id")
		accountID := params.ByName("account_id")
		campaignID := params.ByName("campaign_id")

		if workspaceID == "" || accountID == "" || campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "workspace_id, account_id e campaign_id são obrigatórios", nil)
			return
		}

		window, ok := parseMetricsWindow(w, r)
		if !ok {
			return
		}

		metrics, err := reader.ListByCampaign(r.Context(), workspaceID, accountID, campaignID, window)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"workspace_id": workspaceID,
				"account_id":   accountID,
				"campaign_id":  campaignID,
			}).Error("Erro ao buscar métricas da campanha")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar métricas da campanha", nil)
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

func parseMetricsWindow(w http.ResponseWriter, r *http.Request) (domain.DateWindow, bool) {
	query := r.URL.Query()

	since, err := utils.ParseDate(query.Get("since"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "since deve estar no formato YYYY-MM-DD", nil)
		return domain.DateWindow{}, false
	}

	until, err := utils.ParseDate(query.Get("until"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "until deve estar no formato YYYY-MM-DD", nil)
		return domain.DateWindow{}, false
	}

	window := domain.DateWindow{Start: since, End: until}
	if until.Before(since) || window.Days() > maxMetricsRangeDays {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Intervalo de datas inválido", map[string]any{
			"since":    query.Get("since"),
			"until":    query.Get("until"),
			"max_days": maxMetricsRangeDays,
		})
		return domain.DateWindow{}, false
	}

	return window, true
}
