package syncing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vfg2006/ads-sync-api/internal/domain"
)

// runExecution acumula o estado de uma execução enquanto as contas são processadas
type runExecution struct {
	service *Service
	run     *domain.SyncRun
	window  domain.DateWindow
	client  ProviderClient
	token   *tokenHolder

	mu                sync.Mutex
	rowsUpserted      int
	campaignsUpserted int
	accountsFailed    int
	fatal             error
}

// processAccounts distribui as contas entre no máximo MaxConcurrentAccounts workers.
// Um erro de nível de execução interrompe o envio de novas contas e é devolvido ao final.
func (e *runExecution) processAccounts(ctx context.Context, accounts []*domain.SelectedAccount) error {
	semaphore := make(chan struct{}, e.service.opts.MaxConcurrentAccounts)
	var wg sync.WaitGroup

	for _, account := range accounts {
		semaphore <- struct{}{} // Adquirir semáforo

		if e.aborted() {
			<-semaphore
			break
		}

		wg.Add(1)
		go func(acc *domain.SelectedAccount) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			if err := e.processAccount(ctx, acc); err != nil {
				e.abort(err)
			}
		}(account)
	}

	wg.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fatal
}

func (e *runExecution) aborted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fatal != nil
}

func (e *runExecution) abort(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fatal == nil {
		e.fatal = err
	}
}

// processAccount busca e grava os dados de uma conta. Falhas da conta são registradas e engolidas;
// somente erros de autenticação e de gravação sobem.
func (e *runExecution) processAccount(ctx context.Context, account *domain.SelectedAccount) error {
	recorder := e.service.recorder
	accountID := account.ExternalID

	data, err := e.fetchWithAuthRetry(ctx, accountID)
	if err != nil {
		var syncErr *SyncError
		if errors.As(err, &syncErr) && syncErr.Kind == KindAuth {
			return err
		}

		accErr := NewAccountError(accountID, err)
		recorder.Log(ctx, e.run.ID, domain.LogLevelError, accErr.Error(), accountID)

		e.mu.Lock()
		e.accountsFailed++
		e.mu.Unlock()
		return nil
	}

	campaigns, metrics := e.stamp(account, data)

	campaignCount, err := e.service.campaignRepository.UpsertCampaigns(ctx, campaigns)
	if err != nil {
		return NewSyncError(KindStorage, ErrStorage, fmt.Sprintf("upsert campaigns for account %s: %v", accountID, err))
	}

	rowCount, err := e.service.dailyMetricRepository.UpsertDailyMetrics(ctx, metrics)
	if err != nil {
		return NewSyncError(KindStorage, ErrStorage, fmt.Sprintf("upsert daily metrics for account %s: %v", accountID, err))
	}

	e.mu.Lock()
	e.rowsUpserted += rowCount
	e.campaignsUpserted += campaignCount
	e.mu.Unlock()

	recorder.Log(ctx, e.run.ID, domain.LogLevelInfo,
		fmt.Sprintf("account %s: %d daily metrics upserted, %d campaigns", accountID, rowCount, campaignCount), accountID)

	return nil
}

// fetchWithAuthRetry renova o token uma única vez quando o provedor o rejeita
func (e *runExecution) fetchWithAuthRetry(ctx context.Context, accountID string) (*domain.AccountData, error) {
	token := e.token.current()

	data, err := e.fetchWithRetry(ctx, accountID, token)
	if err == nil || !domain.IsProviderAuthError(err) {
		return data, err
	}

	e.service.recorder.Log(ctx, e.run.ID, domain.LogLevelWarn,
		fmt.Sprintf("account %s: access token rejected, refreshing: %v", accountID, err), accountID)

	token, refreshErr := e.token.refresh(ctx, token)
	if refreshErr != nil {
		return nil, tokenError(refreshErr)
	}

	data, err = e.fetchWithRetry(ctx, accountID, token)
	if err != nil && domain.IsProviderAuthError(err) {
		return nil, NewSyncError(KindAuth, ErrReconnectRequired, err.Error())
	}

	return data, err
}

// fetchWithRetry tenta novamente apenas erros transitórios, com espera exponencial e jitter
func (e *runExecution) fetchWithRetry(ctx context.Context, accountID, token string) (*domain.AccountData, error) {
	opts := e.service.opts

	var lastErr error
	for attempt := 0; attempt <= opts.FetchMaxRetries; attempt++ {
		data, err := e.client.FetchAccountData(ctx, accountID, e.window, token)
		if err == nil {
			return data, nil
		}

		lastErr = err
		if !domain.IsRetryableProviderError(err) || attempt == opts.FetchMaxRetries {
			break
		}

		e.service.recorder.Log(ctx, e.run.ID, domain.LogLevelWarn,
			fmt.Sprintf("account %s: transient error on attempt %d, retrying: %v", accountID, attempt+1, err), accountID)

		if err := sleepWithJitter(ctx, backoff(opts.RetryBaseDelay, attempt)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// stamp preenche o workspace e a conta nas linhas normalizadas pelo cliente
func (e *runExecution) stamp(account *domain.SelectedAccount, data *domain.AccountData) ([]domain.Campaign, []domain.DailyMetric) {
	campaigns := make([]domain.Campaign, 0, len(data.Campaigns))
	for _, campaign := range data.Campaigns {
		campaign.WorkspaceID = e.run.WorkspaceID
		campaign.Provider = e.run.Provider
		campaign.ExternalAccountID = account.ExternalID
		campaigns = append(campaigns, campaign)
	}

	metrics := make([]domain.DailyMetric, 0, len(data.Metrics))
	for _, metric := range data.Metrics {
		metric.WorkspaceID = e.run.WorkspaceID
		metric.Provider = e.run.Provider
		metric.ExternalAccountID = account.ExternalID
		if metric.Currency == "" {
			metric.Currency = account.Currency
		}
		metrics = append(metrics, metric)
	}

	return campaigns, metrics
}
