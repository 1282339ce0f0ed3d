package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

type DailyMetricRepository interface {
	// UpsertDailyMetrics grava as métricas pela chave natural (workspace, conta, campanha, data).
	// Reexecutar com os mesmos dados não cria linhas novas.
	UpsertDailyMetrics(ctx context.Context, metrics []domain.DailyMetric) (int, error)
	ListByCampaign(ctx context.Context, workspaceID, externalAccountID, externalCampaignID string, window domain.DateWindow) ([]*domain.DailyMetric, error)
}

type dailyMetricRepository struct {
	conn postgres.Conn
}

func NewDailyMetricRepository(conn *postgres.Connection) DailyMetricRepository {
	return &dailyMetricRepository{
		conn: conn,
	}
}

func (r *dailyMetricRepository) UpsertDailyMetrics(ctx context.Context, metrics []domain.DailyMetric) (int, error) {
	unique := dedupeDailyMetrics(metrics)
	if len(unique) == 0 {
		return 0, nil
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(unique); start += upsertBatchSize {
			end := min(start+upsertBatchSize, len(unique))

			query, args, err := buildUpsertDailyMetricsQuery(unique[start:end])
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return wrapDBError(err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(unique), nil
}

func dedupeDailyMetrics(metrics []domain.DailyMetric) []domain.DailyMetric {
	index := make(map[domain.DailyMetricKey]int, len(metrics))
	unique := make([]domain.DailyMetric, 0, len(metrics))

	for _, metric := range metrics {
		if pos, ok := index[metric.Key()]; ok {
			unique[pos] = metric
			continue
		}
		index[metric.Key()] = len(unique)
		unique = append(unique, metric)
	}

	return unique
}

func buildUpsertDailyMetricsQuery(metrics []domain.DailyMetric) (string, []any, error) {
	builder := squirrel.
		Insert("daily_metrics").
		Columns(
			"workspace_id",
			"provider",
			"external_account_id",
			"external_campaign_id",
			"date",
			"impressions",
			"clicks",
			"spend",
			"conversions",
			"ctr",
			"cpc",
			"currency",
			"updated_at",
		)

	for _, metric := range metrics {
		builder = builder.Values(
			metric.WorkspaceID,
			string(metric.Provider),
			metric.ExternalAccountID,
			metric.ExternalCampaignID,
			metric.Date,
			metric.Impressions,
			metric.Clicks,
			metric.Spend,
			metric.Conversions,
			metric.CTR,
			metric.CPC,
			metric.Currency,
			squirrel.Expr("NOW()"),
		)
	}

	return builder.
		Suffix(`ON CONFLICT (workspace_id, external_account_id, external_campaign_id, date) DO UPDATE SET
			provider = EXCLUDED.provider,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			spend = EXCLUDED.spend,
			conversions = EXCLUDED.conversions,
			ctr = EXCLUDED.ctr,
			cpc = EXCLUDED.cpc,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *dailyMetricRepository) ListByCampaign(ctx context.Context, workspaceID, externalAccountID, externalCampaignID string, window domain.DateWindow) ([]*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select(
			"workspace_id, provider, external_account_id, external_campaign_id, to_char(date, 'YYYY-MM-DD')",
			"impressions, clicks, spend, conversions, ctr, cpc, COALESCE(currency, ''), updated_at",
		).
		From("daily_metrics").
		Where(squirrel.Eq{
			"workspace_id":         workspaceID,
			"external_account_id":  externalAccountID,
			"external_campaign_id": externalCampaignID,
		}).
		Where(squirrel.GtOrEq{"date": window.Since()}).
		Where(squirrel.LtOrEq{"date": window.Until()}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		metric := &domain.DailyMetric{}
		var provider string

		if err := rows.Scan(
			&metric.WorkspaceID,
			&provider,
			&metric.ExternalAccountID,
			&metric.ExternalCampaignID,
			&metric.Date,
			&metric.Impressions,
			&metric.Clicks,
			&metric.Spend,
			&metric.Conversions,
			&metric.CTR,
			&metric.CPC,
			&metric.Currency,
			&metric.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica diária: %w", err)
		}

		metric.Provider = domain.Provider(provider)
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}
