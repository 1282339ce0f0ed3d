package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-api/pkg/utils"
)

// ProviderSyncConfig representa a configuração do agendador de sincronização
type ProviderSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// ProviderSyncService agenda a sincronização de todas as conexões ativas
type ProviderSyncService struct {
	scheduler           *gocron.Scheduler
	config              ProviderSyncConfig
	connectionRepo      repository.ConnectionRepository
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastCycleID         string
	lastCycleSummary    CycleSummary
}

// CycleSummary resume o resultado de um ciclo do agendador
type CycleSummary struct {
	Connections int `json:"connections"`
	Completed   int `json:"completed"`
	Failed      int `json:"failed"`
	Skipped     int `json:"skipped"`
}

func NewProviderSyncService(
	connectionRepo repository.ConnectionRepository,
	syncer syncing.Syncer,
	appConfig *config.Config,
) *ProviderSyncService {
	syncConfig := ProviderSyncConfig{
		CronSchedule:      appConfig.Sync.CronSchedule,
		LookbackDays:      appConfig.Sync.DefaultLookbackDays,
		MaxConcurrentJobs: appConfig.Sync.MaxConcurrentConnections,
		SyncEnabled:       appConfig.Sync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização carregada")

	return &ProviderSyncService{
		scheduler:      gocron.NewScheduler(appConfig.Sync.Location()),
		config:         syncConfig,
		connectionRepo: connectionRepo,
		syncer:         syncer,
	}
}

// Start inicia o agendador
func (s *ProviderSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllConnections(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllConnections executa um ciclo: uma sincronização por conexão ativa
func (s *ProviderSyncService) syncAllConnections(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ciclo de sincronização já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	cycleID, err := utils.GenerateID()
	if err != nil {
		cycleID = "unknown"
	}

	startTime := time.Now()
	s.setStarted(cycleID, startTime)

	log := logrus.WithField("cycle_id", cycleID)
	log.Info("Iniciando ciclo de sincronização para todas as conexões ativas")

	connections, err := s.connectionRepo.ListActive(ctx)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar conexões para sincronização")
		return
	}

	if len(connections) == 0 {
		log.Info("Nenhuma conexão ativa encontrada para sincronização")
		s.setCompleted(CycleSummary{})
		return
	}

	summary := s.processConnections(ctx, log, connections)

	log.WithFields(logrus.Fields{
		"duration":    time.Since(startTime).String(),
		"connections": summary.Connections,
		"completed":   summary.Completed,
		"failed":      summary.Failed,
		"skipped":     summary.Skipped,
	}).Info("Ciclo de sincronização concluído")

	s.setCompleted(summary)
}

// processConnections sincroniza as conexões com no máximo MaxConcurrentJobs em paralelo
func (s *ProviderSyncService) processConnections(ctx context.Context, log *logrus.Entry, connections []*domain.Connection) CycleSummary {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup
	var mu sync.Mutex

	summary := CycleSummary{Connections: len(connections)}

	for _, connection := range connections {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(conn *domain.Connection) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			outcome := s.syncConnection(ctx, log, conn)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case domain.SyncRunStatusCompleted:
				summary.Completed++
			case domain.SyncRunStatusFailed:
				summary.Failed++
			default:
				summary.Skipped++
			}
		}(connection)
	}

	wg.Wait()

	return summary
}

func (s *ProviderSyncService) syncConnection(ctx context.Context, log *logrus.Entry, conn *domain.Connection) domain.SyncRunStatus {
	fields := logrus.Fields{
		"workspace_id": conn.WorkspaceID,
		"provider":     conn.Provider,
	}

	result, err := s.syncer.Sync(ctx, conn.WorkspaceID, conn.Provider, s.config.LookbackDays)
	if errors.Is(err, syncing.ErrSyncAlreadyRunning) {
		log.WithFields(fields).Info("Sincronização já em andamento para a conexão, ignorando")
		return ""
	}
	if err != nil {
		if result != nil {
			fields["run_id"] = result.RunID
		}
		log.WithFields(fields).WithError(err).Error("Erro na sincronização agendada")
		return domain.SyncRunStatusFailed
	}

	fields["run_id"] = result.RunID
	fields["rows_upserted"] = result.RowsUpserted
	fields["accounts_failed"] = result.AccountsFailed
	log.WithFields(fields).Info("Sincronização agendada concluída")

	return result.Status
}

func (s *ProviderSyncService) setStarted(cycleID string, startedAt time.Time) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.lastCycleID = cycleID
	s.lastSyncStartedAt = startedAt
}

func (s *ProviderSyncService) setCompleted(summary CycleSummary) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.lastSyncCompletedAt = time.Now()
	s.lastCycleSummary = summary
}

// TriggerManualSync inicia manualmente um ciclo de sincronização.
// Retorna false quando já existe um ciclo em andamento.
func (s *ProviderSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ciclo de sincronização já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando ciclo manual de sincronização")
	go s.syncAllConnections(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *ProviderSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_cycle_id":          s.lastCycleID,
		"last_cycle_summary":     s.lastCycleSummary,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
