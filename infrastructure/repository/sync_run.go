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
	syncRunsColumns = "id, workspace_id, provider, status, lookback_days, to_char(window_start, 'YYYY-MM-DD'), to_char(window_end, 'YYYY-MM-DD'), " +
		"started_at, finished_at, error_message, rows_upserted, accounts_total, accounts_failed"
	syncRunLogsColumns = "id, run_id, level, message, account_id, created_at"
)

type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	AppendLog(ctx context.Context, entry *domain.SyncRunLog) error
	// Close só altera execuções com status running. Retorna false quando a execução já estava finalizada.
	Close(ctx context.Context, runID string, runClose domain.SyncRunClose) (bool, error)
	GetByID(ctx context.Context, runID string) (*domain.SyncRun, error)
	GetLatest(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.SyncRun, error)
	ListLogs(ctx context.Context, runID string) ([]*domain.SyncRunLog, error)
}

type syncRunRepository struct {
	conn postgres.Conn
}

func NewSyncRunRepository(conn *postgres.Connection) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

func (r *syncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	query, args, err := squirrel.
		Insert("sync_runs").
		Columns(
			"id",
			"workspace_id",
			"provider",
			"status",
			"lookback_days",
			"window_start",
			"window_end",
			"started_at",
		).
		Values(
			run.ID,
			run.WorkspaceID,
			string(run.Provider),
			string(run.Status),
			run.LookbackDays,
			run.WindowStart,
			run.WindowEnd,
			run.StartedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (r *syncRunRepository) AppendLog(ctx context.Context, entry *domain.SyncRunLog) error {
	query, args, err := squirrel.
		Insert("sync_run_logs").
		Columns("run_id", "level", "message", "account_id", "created_at").
		Values(entry.RunID, string(entry.Level), entry.Message, entry.AccountID, entry.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (r *syncRunRepository) Close(ctx context.Context, runID string, runClose domain.SyncRunClose) (bool, error) {
	query, args, err := buildCloseRunQuery(runID, runClose)
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

func buildCloseRunQuery(runID string, runClose domain.SyncRunClose) (string, []any, error) {
	return squirrel.
		Update("sync_runs").
		Set("status", string(runClose.Status)).
		Set("finished_at", runClose.FinishedAt).
		Set("rows_upserted", runClose.RowsUpserted).
		Set("accounts_total", runClose.AccountsTotal).
		Set("accounts_failed", runClose.AccountsFailed).
		Set("error_message", runClose.ErrorMessage).
		Where(squirrel.Eq{
			"id":     runID,
			"status": string(domain.SyncRunStatusRunning),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *syncRunRepository) GetByID(ctx context.Context, runID string) (*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select(syncRunsColumns).
		From("sync_runs").
		Where(squirrel.Eq{"id": runID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *syncRunRepository) GetLatest(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select(syncRunsColumns).
		From("sync_runs").
		Where(squirrel.Eq{
			"workspace_id": workspaceID,
			"provider":     string(provider),
		}).
		OrderBy("started_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

// getOne retorna nil, nil quando a execução não existe
func (r *syncRunRepository) getOne(ctx context.Context, query string, args []any) (*domain.SyncRun, error) {
	run := &domain.SyncRun{}
	var provider, status string
	var finishedAt sql.NullTime
	var errorMessage sql.NullString

	err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&run.ID,
		&run.WorkspaceID,
		&provider,
		&status,
		&run.LookbackDays,
		&run.WindowStart,
		&run.WindowEnd,
		&run.StartedAt,
		&finishedAt,
		&errorMessage,
		&run.RowsUpserted,
		&run.AccountsTotal,
		&run.AccountsFailed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear execução: %w", err)
	}

	run.Provider = domain.Provider(provider)
	run.Status = domain.SyncRunStatus(status)
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	if errorMessage.Valid {
		run.ErrorMessage = &errorMessage.String
	}

	return run, nil
}

func (r *syncRunRepository) ListLogs(ctx context.Context, runID string) ([]*domain.SyncRunLog, error) {
	query, args, err := squirrel.
		Select(syncRunLogsColumns).
		From("sync_run_logs").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("id ASC").
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

	logs := make([]*domain.SyncRunLog, 0)
	for rows.Next() {
		entry := &domain.SyncRunLog{}
		var level string
		var accountID sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&level,
			&entry.Message,
			&accountID,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear log da execução: %w", err)
		}

		entry.Level = domain.LogLevel(level)
		if accountID.Valid {
			entry.AccountID = &accountID.String
		}
		logs = append(logs, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return logs, nil
}
