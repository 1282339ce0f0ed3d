package syncing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/usecases/tokening"
)

type Options struct {
	// MaxConcurrentAccounts limita quantas contas são buscadas ao mesmo tempo. 1 processa em sequência.
	MaxConcurrentAccounts int
	// FetchMaxRetries é o número de novas tentativas por conta em erros transitórios
	FetchMaxRetries int
	RetryBaseDelay  time.Duration
	// MaxLookbackDays é o maior histórico aceito por provedor. Zero ou ausente não limita.
	MaxLookbackDays map[domain.Provider]int
	// Location define o "hoje" usado para calcular a janela
	Location *time.Location
}

type Service struct {
	connectionRepository      repository.ConnectionRepository
	selectedAccountRepository repository.SelectedAccountRepository
	campaignRepository        repository.CampaignRepository
	dailyMetricRepository     repository.DailyMetricRepository
	tokenService              tokening.Service
	recorder                  RunRecorder
	clients                   map[domain.Provider]ProviderClient
	locks                     *runLock
	opts                      Options
	now                       func() time.Time
}

// NewService cria o orquestrador. Provedores sem cliente registrado falham com ErrProviderCredentialsMissing.
func NewService(
	connectionRepo repository.ConnectionRepository,
	selectedAccountRepo repository.SelectedAccountRepository,
	campaignRepo repository.CampaignRepository,
	dailyMetricRepo repository.DailyMetricRepository,
	tokenService tokening.Service,
	recorder RunRecorder,
	opts Options,
	clients ...ProviderClient,
) *Service {
	if opts.MaxConcurrentAccounts < 1 {
		opts.MaxConcurrentAccounts = 1
	}
	if opts.FetchMaxRetries < 0 {
		opts.FetchMaxRetries = 0
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	registered := make(map[domain.Provider]ProviderClient, len(clients))
	for _, client := range clients {
		registered[client.Provider()] = client
	}

	return &Service{
		connectionRepository:      connectionRepo,
		selectedAccountRepository: selectedAccountRepo,
		campaignRepository:        campaignRepo,
		dailyMetricRepository:     dailyMetricRepo,
		tokenService:              tokenService,
		recorder:                  recorder,
		clients:                   registered,
		locks:                     newRunLock(),
		opts:                      opts,
		now:                       time.Now,
	}
}

// WithClock substitui o relógio usado para calcular a janela
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Sync(ctx context.Context, workspaceID string, provider domain.Provider, lookbackDays int) (*domain.SyncResult, error) {
	if err := s.validate(provider, lookbackDays); err != nil {
		return nil, err
	}

	if !s.locks.TryLock(workspaceID, provider) {
		return nil, ErrSyncAlreadyRunning
	}
	defer s.locks.Unlock(workspaceID, provider)

	// Uma execução iniciada não é cancelada por quem chamou; cada chamada externa tem seu próprio timeout
	ctx = context.WithoutCancel(ctx)

	window, err := domain.NewDateWindow(s.now().In(s.opts.Location), lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLookback, err)
	}

	run, err := s.recorder.OpenRun(ctx, workspaceID, provider, lookbackDays, window)
	if err != nil {
		return nil, NewSyncError(KindStorage, ErrStorage, fmt.Sprintf("open run: %v", err))
	}

	result := &domain.SyncResult{
		RunID:       run.ID,
		Status:      domain.SyncRunStatusRunning,
		WindowStart: window.Since(),
		WindowEnd:   window.Until(),
	}

	stats, runErr := s.execute(ctx, run, window, result)
	result.RowsUpserted = stats.RowsUpserted
	result.AccountsTotal = stats.AccountsTotal
	result.AccountsFailed = stats.AccountsFailed

	if runErr != nil {
		return s.fail(ctx, run, stats, result, runErr)
	}

	if err := s.recorder.CloseRun(ctx, run.ID, domain.SyncRunStatusCompleted, stats, nil); err != nil {
		if errors.Is(err, ErrRunAlreadyClosed) {
			result.Status = domain.SyncRunStatusCompleted
			return result, nil
		}
		return s.fail(ctx, run, stats, result, NewSyncError(KindStorage, ErrStorage, fmt.Sprintf("close run: %v", err)))
	}

	result.Status = domain.SyncRunStatusCompleted
	return result, nil
}

func (s *Service) validate(provider domain.Provider, lookbackDays int) error {
	if _, err := domain.ParseProvider(string(provider)); err != nil {
		return err
	}

	if lookbackDays < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLookback, lookbackDays)
	}

	if limit := s.opts.MaxLookbackDays[provider]; limit > 0 && lookbackDays > limit {
		return fmt.Errorf("%w: %d days requested, %s supports up to %d", ErrLookbackTooLarge, lookbackDays, provider, limit)
	}

	return nil
}

// fail finaliza a execução como failed com a mensagem do erro e devolve o erro para quem chamou
func (s *Service) fail(ctx context.Context, run *domain.SyncRun, stats RunStats, result *domain.SyncResult, runErr error) (*domain.SyncResult, error) {
	s.recorder.Log(ctx, run.ID, domain.LogLevelError, runErr.Error(), "")

	if err := s.recorder.CloseRun(ctx, run.ID, domain.SyncRunStatusFailed, stats, runErr); err != nil {
		logrus.WithFields(logrus.Fields{
			"run_id": run.ID,
			"error":  err.Error(),
		}).Error("Erro ao finalizar execução com falha")
	}

	result.Status = domain.SyncRunStatusFailed
	return result, runErr
}

// execute cobre os passos entre abrir e fechar a execução. Erros retornados são de nível de execução.
func (s *Service) execute(ctx context.Context, run *domain.SyncRun, window domain.DateWindow, result *domain.SyncResult) (RunStats, error) {
	stats := RunStats{}

	conn, err := s.connectionRepository.GetActive(ctx, run.WorkspaceID, run.Provider)
	if err != nil {
		return stats, NewSyncError(KindStorage, ErrStorage, fmt.Sprintf("load connection: %v", err))
	}
	if conn == nil {
		return stats, NewSyncError(KindConfiguration, ErrConnectionMissing, fmt.Sprintf("workspace %s, provider %s", run.WorkspaceID, run.Provider))
	}

	client, ok := s.clients[run.Provider]
	if !ok {
		return stats, NewSyncError(KindConfiguration, ErrProviderCredentialsMissing, run.Provider.String())
	}

	accounts, err := s.selectedAccountRepository.ListSelected(ctx, run.WorkspaceID, run.Provider)
	if err != nil {
		return stats, NewSyncError(KindStorage, ErrStorage, fmt.Sprintf("load selected accounts: %v", err))
	}

	if len(accounts) == 0 {
		s.recorder.Log(ctx, run.ID, domain.LogLevelWarn, "no selected accounts, nothing to sync", "")
		return stats, nil
	}
	stats.AccountsTotal = len(accounts)

	accessToken, err := s.tokenService.EnsureValidToken(ctx, conn)
	if err != nil {
		return stats, tokenError(err)
	}

	s.recorder.Log(ctx, run.ID, domain.LogLevelInfo,
		fmt.Sprintf("syncing %d accounts from %s to %s", len(accounts), window.Since(), window.Until()), "")

	exec := &runExecution{
		service: s,
		run:     run,
		window:  window,
		client:  client,
		token:   &tokenHolder{service: s.tokenService, conn: conn, token: accessToken},
	}

	err = exec.processAccounts(ctx, accounts)

	stats.RowsUpserted = exec.rowsUpserted
	stats.AccountsFailed = exec.accountsFailed
	result.CampaignsUpserted = exec.campaignsUpserted

	return stats, err
}

func tokenError(err error) error {
	var refreshErr *tokening.TokenRefreshError
	if errors.As(err, &refreshErr) && refreshErr.Revoked {
		return NewSyncError(KindAuth, ErrReconnectRequired, err.Error())
	}
	return NewSyncError(KindAuth, err, "")
}

func (s *Service) IsRunning(workspaceID string, provider domain.Provider) bool {
	return s.locks.IsLocked(workspaceID, provider)
}

func (s *Service) LatestRun(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.SyncRun, error) {
	return s.recorder.LatestRun(ctx, workspaceID, provider)
}

func (s *Service) GetRun(ctx context.Context, runID string) (*domain.SyncRun, error) {
	return s.recorder.GetRun(ctx, runID)
}

func (s *Service) ListRunLogs(ctx context.Context, runID string) ([]*domain.SyncRunLog, error) {
	return s.recorder.ListLogs(ctx, runID)
}

func (s *Service) Disconnect(ctx context.Context, workspaceID string, provider domain.Provider) error {
	if _, err := domain.ParseProvider(string(provider)); err != nil {
		return err
	}

	if err := s.connectionRepository.SetStatus(ctx, workspaceID, provider, domain.ConnectionStatusDisconnected); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrConnectionMissing
		}
		return err
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": workspaceID,
		"provider":     provider,
	}).Info("Conexão desconectada")

	return nil
}

// tokenHolder compartilha o access token entre os workers e serializa a renovação forçada
type tokenHolder struct {
	service tokening.Service
	mu      sync.Mutex
	conn    *domain.Connection
	token   string
}

func (h *tokenHolder) current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

// refresh renova o token rejeitado. Se outro worker já renovou, devolve o token novo sem chamar o provedor.
func (h *tokenHolder) refresh(ctx context.Context, rejected string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.token != rejected {
		return h.token, nil
	}

	token, err := h.service.ForceRefresh(ctx, h.conn)
	if err != nil {
		return "", err
	}

	h.token = token
	return token, nil
}
