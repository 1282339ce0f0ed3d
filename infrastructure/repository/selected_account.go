package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

const (
	selectedAccountsTable = "selected_ad_accounts sa"
)

type SelectedAccountRepository interface {
	// ListSelected só retorna contas de um workspace com conexão ativa para o provedor
	ListSelected(ctx context.Context, workspaceID string, provider domain.Provider) ([]*domain.SelectedAccount, error)
	// Select inclui a conta ou atualiza nome, moeda e fuso quando ela já estiver selecionada
	Select(ctx context.Context, account *domain.SelectedAccount) error
	// Unselect retorna ErrNotFound quando a conta não estava selecionada
	Unselect(ctx context.Context, workspaceID string, provider domain.Provider, externalAccountID string) error
}

type selectedAccountRepository struct {
	conn postgres.Conn
}

func NewSelectedAccountRepository(conn *postgres.Connection) SelectedAccountRepository {
	return &selectedAccountRepository{
		conn: conn,
	}
}

func (r *selectedAccountRepository) ListSelected(ctx context.Context, workspaceID string, provider domain.Provider) ([]*domain.SelectedAccount, error) {
	query, args, err := squirrel.
		Select("sa.workspace_id, sa.provider, sa.external_account_id, sa.name, sa.currency, sa.timezone").
		From(selectedAccountsTable).
		Join("provider_connections pc ON pc.workspace_id = sa.workspace_id AND pc.provider = sa.provider AND pc.status = 'active'").
		Where(squirrel.Eq{
			"sa.workspace_id": workspaceID,
			"sa.provider":     string(provider),
		}).
		OrderBy("sa.external_account_id ASC").
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

	accounts := make([]*domain.SelectedAccount, 0)
	for rows.Next() {
		account := &domain.SelectedAccount{}
		var providerName string
		var name, currency, timezone sql.NullString

		if err := rows.Scan(
			&account.WorkspaceID,
			&providerName,
			&account.ExternalID,
			&name,
			&currency,
			&timezone,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta selecionada: %w", err)
		}

		account.Provider = domain.Provider(providerName)
		account.Name = name.String
		account.Currency = currency.String
		account.Timezone = timezone.String
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *selectedAccountRepository) Select(ctx context.Context, account *domain.SelectedAccount) error {
	query, args, err := buildSelectAccountQuery(account)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}

func buildSelectAccountQuery(account *domain.SelectedAccount) (string, []any, error) {
	return squirrel.
		Insert("selected_ad_accounts").
		Columns("workspace_id", "provider", "external_account_id", "name", "currency", "timezone").
		Values(
			account.WorkspaceID,
			string(account.Provider),
			account.ExternalID,
			account.Name,
			account.Currency,
			account.Timezone,
		).
		Suffix(`ON CONFLICT (workspace_id, provider, external_account_id) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), selected_ad_accounts.name),
			currency = COALESCE(NULLIF(EXCLUDED.currency, ''), selected_ad_accounts.currency),
			timezone = COALESCE(NULLIF(EXCLUDED.timezone, ''), selected_ad_accounts.timezone)`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *selectedAccountRepository) Unselect(ctx context.Context, workspaceID string, provider domain.Provider, externalAccountID string) error {
	query, args, err := squirrel.
		Delete("selected_ad_accounts").
		Where(squirrel.Eq{
			"workspace_id":        workspaceID,
			"provider":            string(provider),
			"external_account_id": externalAccountID,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
