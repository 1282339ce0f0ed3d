package domain

import (
	"time"
)

type SyncRunStatus string

const (
	SyncRunStatusRunning   SyncRunStatus = "running"
	SyncRunStatusCompleted SyncRunStatus = "completed"
	SyncRunStatusFailed    SyncRunStatus = "failed"
)

func (s SyncRunStatus) IsTerminal() bool {
	return s == SyncRunStatusCompleted || s == SyncRunStatusFailed
}

// SyncRun registra uma execução do orquestrador para (workspace, provider)
type SyncRun struct {
	ID             string        `json:"id"`
	WorkspaceID    string        `json:"workspace_id"`
	Provider       Provider      `json:"provider"`
	Status         SyncRunStatus `json:"status"`
	LookbackDays   int           `json:"lookback_days"`
	WindowStart    string        `json:"window_start"`
	WindowEnd      string        `json:"window_end"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     *time.Time    `json:"finished_at"`
	ErrorMessage   *string       `json:"error_message"`
	RowsUpserted   int           `json:"rows_upserted"`
	AccountsTotal  int           `json:"accounts_total"`
	AccountsFailed int           `json:"accounts_failed"`
}

// SyncRunClose contém os campos gravados ao finalizar uma execução
type SyncRunClose struct {
	Status         SyncRunStatus
	FinishedAt     time.Time
	RowsUpserted   int
	AccountsTotal  int
	AccountsFailed int
	ErrorMessage   *string
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// SyncRunLog é uma linha do histórico de auditoria de uma execução. Nunca é alterada.
type SyncRunLog struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	AccountID *string   `json:"account_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SyncResult struct {
	RunID             string        `json:"run_id"`
	Status            SyncRunStatus `json:"status"`
	RowsUpserted      int           `json:"rows_upserted"`
	CampaignsUpserted int           `json:"campaigns_upserted"`
	AccountsTotal     int           `json:"accounts_total"`
	AccountsFailed    int           `json:"accounts_failed"`
	WindowStart       string        `json:"window_start"`
	WindowEnd         string        `json:"window_end"`
}
