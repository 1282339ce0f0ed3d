package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

const (
	connectionsTable   = "provider_connections pc"
	connectionsColumns = "pc.id, pc.workspace_id, pc.provider, pc.access_token, pc.refresh_token, pc.token_expires_at, pc.status, pc.created_at, pc.updated_at"
)

type ConnectionRepository interface {
	// GetActive retorna nil, nil quando não existe conexão ativa
	GetActive(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.Connection, error)
	ListActive(ctx context.Context) ([]*domain.Connection, error)
	// UpdateTokens grava o novo par de tokens somente se o access token atual ainda for previousAccessToken.
	// Retorna false quando outro processo já renovou o token.
	UpdateTokens(ctx context.Context, connectionID string, previousAccessToken string, update domain.TokenUpdate) (bool, error)
	SetStatus(ctx context.Context, workspaceID string, provider domain.Provider, status domain.ConnectionStatus) error
}

type connectionRepository struct {
	conn postgres.Conn
}

func NewConnectionRepository(conn *postgres.Connection) ConnectionRepository {
	return &connectionRepository{
		conn: conn,
	}
}

func (r *connectionRepository) GetActive(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.Connection, error) {
	query, args, err := squirrel.
		Select(connectionsColumns).
		From(connectionsTable).
		Where(squirrel.Eq{
			"pc.workspace_id": workspaceID,
			"pc.provider":     string(provider),
			"pc.status":       string(domain.ConnectionStatusActive),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	connection, err := scanConnection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conexão: %w", err)
	}

	return connection, nil
}

func (r *connectionRepository) ListActive(ctx context.Context) ([]*domain.Connection, error) {
	query, args, err := squirrel.
		Select(connectionsColumns).
		From(connectionsTable).
		Where(squirrel.Eq{"pc.status": string(domain.ConnectionStatusActive)}).
		OrderBy("pc.workspace_id ASC", "pc.provider ASC").
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

	connections := make([]*domain.Connection, 0)
	for rows.Next() {
		connection, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conexão: %w", err)
		}
		connections = append(connections, connection)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return connections, nil
}

func (r *connectionRepository) UpdateTokens(ctx context.Context, connectionID string, previousAccessToken string, update domain.TokenUpdate) (bool, error) {
	query, args, err := buildUpdateTokensQuery(connectionID, previousAccessToken, update)
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapDBError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected == 1, nil
}

func buildUpdateTokensQuery(connectionID string, previousAccessToken string, update domain.TokenUpdate) (string, []any, error) {
	return squirrel.
		Update("provider_connections").
		Set("access_token", update.AccessToken).
		Set("refresh_token", squirrel.Expr("COALESCE(NULLIF(?, ''), refresh_token)", update.RefreshToken)).
		Set("token_expires_at", update.ExpiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":           connectionID,
			"access_token": previousAccessToken,
			"status":       string(domain.ConnectionStatusActive),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *connectionRepository) SetStatus(ctx context.Context, workspaceID string, provider domain.Provider, status domain.ConnectionStatus) error {
	query, args, err := squirrel.
		Update("provider_connections").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"workspace_id": workspaceID,
			"provider":     string(provider),
		}).
		Where(squirrel.NotEq{"status": string(status)}).
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConnection(row rowScanner) (*domain.Connection, error) {
	connection := &domain.Connection{}
	var provider, status string
	var accessToken, refreshToken sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(
		&connection.ID,
		&connection.WorkspaceID,
		&provider,
		&accessToken,
		&refreshToken,
		&expiresAt,
		&status,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	connection.Provider = domain.Provider(provider)
	connection.Status = domain.ConnectionStatus(status)
	connection.AccessToken = accessToken.String
	connection.RefreshToken = refreshToken.String
	if expiresAt.Valid {
		connection.TokenExpiresAt = expiresAt.Time
	}

	return connection, nil
}
