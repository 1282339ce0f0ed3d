package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

// upsertBatchSize limita o número de linhas por INSERT para não estourar o limite de parâmetros do postgres
const upsertBatchSize = 500

type CampaignRepository interface {
	// UpsertCampaigns insere ou atualiza pela chave natural e retorna o número de campanhas gravadas
	UpsertCampaigns(ctx context.Context, campaigns []domain.Campaign) (int, error)
}

type campaignRepository struct {
	conn postgres.Conn
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) UpsertCampaigns(ctx context.Context, campaigns []domain.Campaign) (int, error) {
	unique := dedupeCampaigns(campaigns)
	if len(unique) == 0 {
		return 0, nil
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(unique); start += upsertBatchSize {
			end := min(start+upsertBatchSize, len(unique))

			query, args, err := buildUpsertCampaignsQuery(unique[start:end])
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

// dedupeCampaigns mantém a última ocorrência de cada chave, preservando a ordem da primeira
func dedupeCampaigns(campaigns []domain.Campaign) []domain.Campaign {
	index := make(map[domain.CampaignKey]int, len(campaigns))
	unique := make([]domain.Campaign, 0, len(campaigns))

	for _, campaign := range campaigns {
		if pos, ok := index[campaign.Key()]; ok {
			unique[pos] = campaign
			continue
		}
		index[campaign.Key()] = len(unique)
		unique = append(unique, campaign)
	}

	return unique
}

func buildUpsertCampaignsQuery(campaigns []domain.Campaign) (string, []any, error) {
	builder := squirrel.
		Insert("campaigns").
		Columns(
			"workspace_id",
			"provider",
			"external_account_id",
			"external_campaign_id",
			"name",
			"status",
			"channel",
			"updated_at",
		)

	for _, campaign := range campaigns {
		builder = builder.Values(
			campaign.WorkspaceID,
			string(campaign.Provider),
			campaign.ExternalAccountID,
			campaign.ExternalID,
			campaign.Name,
			campaign.Status,
			campaign.Channel,
			squirrel.Expr("NOW()"),
		)
	}

	return builder.
		Suffix(`ON CONFLICT (workspace_id, external_account_id, external_campaign_id) DO UPDATE SET
			provider = EXCLUDED.provider,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			channel = EXCLUDED.channel,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
