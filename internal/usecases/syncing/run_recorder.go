package syncing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

type runRecorder struct {
	syncRunRepo repository.SyncRunRepository
	now         func() time.Time
	// campos de log de cada execução aberta
	entries sync.Map
}

func NewRunRecorder(syncRunRepo repository.SyncRunRepository) RunRecorder {
	return &runRecorder{
		syncRunRepo: syncRunRepo,
		now:         time.Now,
	}
}

func (r *runRecorder) OpenRun(ctx context.Context, workspaceID string, provider domain.Provider, lookbackDays int, window domain.DateWindow) (*domain.SyncRun, error) {
	run := &domain.SyncRun{
		ID:           uuid.New().String(),
		WorkspaceID:  workspaceID,
		Provider:     provider,
		Status:       domain.SyncRunStatusRunning,
		LookbackDays: lookbackDays,
		WindowStart:  window.Since(),
		WindowEnd:    window.Until(),
		StartedAt:    r.now().UTC(),
	}

	if err := r.syncRunRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	r.entries.Store(run.ID, logrus.WithFields(logrus.Fields{
		"run_id":       run.ID,
		"workspace_id": workspaceID,
		"provider":     provider,
	}))

	r.entry(run.ID).Info("Execução de sincronização iniciada")

	return run, nil
}

func (r *runRecorder) Log(ctx context.Context, runID string, level domain.LogLevel, message string, accountID string) {
	entry := r.entry(runID)
	if accountID != "" {
		entry = entry.WithField("account_id", accountID)
	}

	switch level {
	case domain.LogLevelDebug:
		entry.Debug(message)
	case domain.LogLevelWarn:
		entry.Warn(message)
	case domain.LogLevelError:
		entry.Error(message)
	default:
		entry.Info(message)
	}

	line := &domain.SyncRunLog{
		RunID:     runID,
		Level:     level,
		Message:   message,
		CreatedAt: r.now().UTC(),
	}
	if accountID != "" {
		line.AccountID = &accountID
	}

	if err := r.syncRunRepo.AppendLog(ctx, line); err != nil {
		entry.WithError(err).Error("Erro ao gravar log da execução")
	}
}

func (r *runRecorder) CloseRun(ctx context.Context, runID string, status domain.SyncRunStatus, stats RunStats, runErr error) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrRunNotTerminal, status)
	}

	runClose := domain.SyncRunClose{
		Status:         status,
		FinishedAt:     r.now().UTC(),
		RowsUpserted:   stats.RowsUpserted,
		AccountsTotal:  stats.AccountsTotal,
		AccountsFailed: stats.AccountsFailed,
	}
	if runErr != nil {
		message := runErr.Error()
		runClose.ErrorMessage = &message
	}

	closed, err := r.syncRunRepo.Close(ctx, runID, runClose)
	if err != nil {
		return err
	}

	entry := r.entry(runID)
	if !closed {
		entry.WithField("status", status).Error("Tentativa de finalizar uma execução que já estava finalizada")
		return ErrRunAlreadyClosed
	}

	entry.WithFields(logrus.Fields{
		"status":          status,
		"rows_upserted":   stats.RowsUpserted,
		"accounts_total":  stats.AccountsTotal,
		"accounts_failed": stats.AccountsFailed,
	}).Info("Execução de sincronização finalizada")

	r.entries.Delete(runID)

	return nil
}

func (r *runRecorder) LatestRun(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.SyncRun, error) {
	return r.syncRunRepo.GetLatest(ctx, workspaceID, provider)
}

func (r *runRecorder) GetRun(ctx context.Context, runID string) (*domain.SyncRun, error) {
	return r.syncRunRepo.GetByID(ctx, runID)
}

func (r *runRecorder) ListLogs(ctx context.Context, runID string) ([]*domain.SyncRunLog, error) {
	return r.syncRunRepo.ListLogs(ctx, runID)
}

func (r *runRecorder) entry(runID string) *logrus.Entry {
	if value, ok := r.entries.Load(runID); ok {
		return value.(*logrus.Entry)
	}
	return logrus.WithField("run_id", runID)
}
