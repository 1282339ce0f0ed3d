package syncing

import (
	"context"

	"github.com/vfg2006/ads-sync-api/internal/domain"
)

// ProviderClient define o contrato de cada plataforma de anúncios (Google Ads, Meta Ads)
type ProviderClient interface {
	Provider() domain.Provider

	// FetchAccountData busca campanhas e métricas diárias já normalizadas para a janela.
	// Erros do provedor chegam como *domain.ProviderError.
	FetchAccountData(ctx context.Context, accountID string, window domain.DateWindow, accessToken string) (*domain.AccountData, error)
}

// RunStats contém os totais gravados ao finalizar uma execução
type RunStats struct {
	RowsUpserted   int
	AccountsTotal  int
	AccountsFailed int
}

// RunRecorder mantém o registro de execuções e o histórico de auditoria
type RunRecorder interface {
	OpenRun(ctx context.Context, workspaceID string, provider domain.Provider, lookbackDays int, window domain.DateWindow) (*domain.SyncRun, error)

	// Log grava uma linha no histórico da execução. Falhas de gravação não interrompem a execução.
	Log(ctx context.Context, runID string, level domain.LogLevel, message string, accountID string)

	// CloseRun leva a execução para um estado terminal. Uma execução já finalizada não é alterada
	// e a chamada retorna ErrRunAlreadyClosed.
	CloseRun(ctx context.Context, runID string, status domain.SyncRunStatus, stats RunStats, runErr error) error

	LatestRun(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.SyncRun, error)
	GetRun(ctx context.Context, runID string) (*domain.SyncRun, error)
	ListLogs(ctx context.Context, runID string) ([]*domain.SyncRunLog, error)
}

// Syncer é o orquestrador exposto para a API e para o agendador
type Syncer interface {
	// Sync executa uma sincronização completa para (workspace, provider) nos últimos lookbackDays dias.
	// Quando a execução falha, o resultado com o id da execução é retornado junto com o erro.
	Sync(ctx context.Context, workspaceID string, provider domain.Provider, lookbackDays int) (*domain.SyncResult, error)

	// IsRunning informa se existe uma execução em andamento neste processo
	IsRunning(workspaceID string, provider domain.Provider) bool

	LatestRun(ctx context.Context, workspaceID string, provider domain.Provider) (*domain.SyncRun, error)
	GetRun(ctx context.Context, runID string) (*domain.SyncRun, error)
	ListRunLogs(ctx context.Context, runID string) ([]*domain.SyncRunLog, error)

	// Disconnect marca a conexão como desconectada. O registro é mantido para auditoria.
	Disconnect(ctx context.Context, workspaceID string, provider domain.Provider) error
}
