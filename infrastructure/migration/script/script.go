package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/pkg/log"
)

const (
	idLength   = 12
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Cada instrução é idempotente; o script pode ser executado em todo deploy
var schema = []struct {
	name string
	ddl  string
}{
	{
		name: "provider_connections",
		ddl: `CREATE TABLE IF NOT EXISTS provider_connections (
			id               TEXT PRIMARY KEY,
			workspace_id     TEXT NOT NULL,
			provider         TEXT NOT NULL CHECK (provider IN ('google', 'meta')),
			access_token     TEXT,
			refresh_token    TEXT,
			token_expires_at TIMESTAMPTZ,
			status           TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'disconnected')),
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "provider_connections_active_idx",
		ddl: `CREATE UNIQUE INDEX IF NOT EXISTS provider_connections_active_idx
			ON provider_connections (workspace_id, provider) WHERE status = 'active'`,
	},
	{
		name: "selected_ad_accounts",
		ddl: `CREATE TABLE IF NOT EXISTS selected_ad_accounts (
			workspace_id        TEXT NOT NULL,
			provider            TEXT NOT NULL,
			external_account_id TEXT NOT NULL,
			name                TEXT,
			currency            TEXT,
			timezone            TEXT,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (workspace_id, provider, external_account_id)
		)`,
	},
	{
		name: "campaigns",
		ddl: `CREATE TABLE IF NOT EXISTS campaigns (
			workspace_id         TEXT NOT NULL,
			provider             TEXT NOT NULL,
			external_account_id  TEXT NOT NULL,
			external_campaign_id TEXT NOT NULL,
			name                 TEXT NOT NULL DEFAULT '',
			status               TEXT NOT NULL DEFAULT '',
			channel              TEXT NOT NULL DEFAULT '',
			updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (workspace_id, external_account_id, external_campaign_id)
		)`,
	},
	{
		name: "daily_metrics",
		ddl: `CREATE TABLE IF NOT EXISTS daily_metrics (
			workspace_id         TEXT NOT NULL,
			provider             TEXT NOT NULL,
			external_account_id  TEXT NOT NULL,
			external_campaign_id TEXT NOT NULL,
			date                 DATE NOT NULL,
			impressions          BIGINT NOT NULL DEFAULT 0,
			clicks               BIGINT NOT NULL DEFAULT 0,
			spend                NUMERIC(18, 6) NOT NULL DEFAULT 0,
			conversions          NUMERIC(18, 6) NOT NULL DEFAULT 0,
			ctr                  NUMERIC(18, 6) NOT NULL DEFAULT 0,
			cpc                  NUMERIC(18, 6) NOT NULL DEFAULT 0,
			currency             TEXT,
			updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (workspace_id, external_account_id, external_campaign_id, date)
		)`,
	},
	{
		name: "daily_metrics_workspace_date_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS daily_metrics_workspace_date_idx ON daily_metrics (workspace_id, provider, date)`,
	},
	{
		name: "sync_runs",
		ddl: `CREATE TABLE IF NOT EXISTS sync_runs (
			id              TEXT PRIMARY KEY,
			workspace_id    TEXT NOT NULL,
			provider        TEXT NOT NULL,
			status          TEXT NOT NULL CHECK (status IN ('running', 'completed', 'failed')),
			lookback_days   INTEGER NOT NULL,
			window_start    DATE NOT NULL,
			window_end      DATE NOT NULL,
			started_at      TIMESTAMPTZ NOT NULL,
			finished_at     TIMESTAMPTZ,
			error_message   TEXT,
			rows_upserted   INTEGER NOT NULL DEFAULT 0,
			accounts_total  INTEGER NOT NULL DEFAULT 0,
			accounts_failed INTEGER NOT NULL DEFAULT 0
		)`,
	},
	{
		name: "sync_runs_latest_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS sync_runs_latest_idx ON sync_runs (workspace_id, provider, started_at DESC)`,
	},
	{
		name: "sync_run_logs",
		ddl: `CREATE TABLE IF NOT EXISTS sync_run_logs (
			id         BIGSERIAL PRIMARY KEY,
			run_id     TEXT NOT NULL REFERENCES sync_runs (id) ON DELETE CASCADE,
			level      TEXT NOT NULL CHECK (level IN ('debug', 'info', 'warn', 'error')),
			message    TEXT NOT NULL,
			account_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "sync_run_logs_run_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS sync_run_logs_run_idx ON sync_run_logs (run_id, id)`,
	},
}

func generateID() string {
	id, _ := gonanoid.Generate(characters, idLength)
	return id
}

func migrate(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range schema {
		startTime := time.Now()
		if _, err := tx.ExecContext(ctx, stmt.ddl); err != nil {
			logrus.WithError(err).WithField("object", stmt.name).Error("Erro ao aplicar migração")
			return err
		}
		logrus.WithFields(logrus.Fields{
			"object":  stmt.name,
			"elapsed": time.Since(startTime).String(),
		}).Info("Migração aplicada")
	}
	return nil
}

// seed cria uma conexão ativa e uma conta selecionada para testes locais
// O access token fica vazio e expirado, forçando a renovação na primeira sincronização.
func seed(ctx context.Context, tx *sql.Tx, workspaceID, provider, accountID, refreshToken string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO provider_connections (id, workspace_id, provider, refresh_token, token_expires_at, status)
		VALUES ($1, $2, $3, $4, NOW(), 'active')
		ON CONFLICT (workspace_id, provider) WHERE status = 'active' DO NOTHING`,
		generateID(), workspaceID, provider, refreshToken)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO selected_ad_accounts (workspace_id, provider, external_account_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		workspaceID, provider, accountID)
	return err
}

func main() {
	seedWorkspace := flag.String("seed-workspace", "", "workspace para criar uma conexão de teste")
	seedProvider := flag.String("seed-provider", "google", "provedor da conexão de teste")
	seedAccount := flag.String("seed-account", "", "conta externa selecionada na conexão de teste")
	seedRefreshToken := flag.String("seed-refresh-token", "", "refresh token da conexão de teste")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	logrus.Info("Iniciando script de migração...")
	startTime := time.Now()

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir conexão com o banco")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar transação")
	}

	if err := migrate(ctx, tx); err != nil {
		_ = tx.Rollback()
		logrus.Fatal("Migração cancelada, nenhuma alteração aplicada")
	}

	if *seedWorkspace != "" && *seedAccount != "" {
		if err := seed(ctx, tx, *seedWorkspace, *seedProvider, *seedAccount, *seedRefreshToken); err != nil {
			_ = tx.Rollback()
			logrus.WithError(err).Fatal("Erro ao inserir dados de teste")
		}
		logrus.WithFields(logrus.Fields{
			"workspace_id": *seedWorkspace,
			"provider":     *seedProvider,
			"account_id":   *seedAccount,
		}).Info("Dados de teste inseridos")
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Fatal("Erro ao confirmar transação")
	}

	logrus.WithField("elapsed", time.Since(startTime).String()).Info("Migração concluída")
}
