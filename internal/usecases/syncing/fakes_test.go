package syncing

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

type memSyncRunRepo struct {
	mu        sync.Mutex
	runs      map[string]*domain.SyncRun
	logs      []*domain.SyncRunLog
	appendErr error
}

func newMemSyncRunRepo() *memSyncRunRepo {
	return &memSyncRunRepo{runs: make(map[string]*domain.SyncRun)}
}

func (r *memSyncRunRepo) Create(_ context.Context, run *domain.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *run
	r.runs[run.ID] = &stored
	return nil
}

func (r *memSyncRunRepo) AppendLog(_ context.Context, entry *domain.SyncRunLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	entry.ID = int64(len(r.logs) + 1)
	stored := *entry
	r.logs = append(r.logs, &stored)
	return nil
}

func (r *memSyncRunRepo) Close(_ context.Context, runID string, runClose domain.SyncRunClose) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[runID]
	if !ok || run.Status != domain.SyncRunStatusRunning {
		return false, nil
	}
	finishedAt := runClose.FinishedAt
	run.Status = runClose.Status
	run.FinishedAt = &finishedAt
	run.RowsUpserted = runClose.RowsUpserted
	run.AccountsTotal = runClose.AccountsTotal
	run.AccountsFailed = runClose.AccountsFailed
	run.ErrorMessage = runClose.ErrorMessage
	return true, nil
}

func (r *memSyncRunRepo) GetByID(_ context.Context, runID string) (*domain.SyncRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[runID]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

func (r *memSyncRunRepo) GetLatest(_ context.Context, workspaceID string, provider domain.Provider) (*domain.SyncRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.SyncRun
	for _, run := range r.runs {
		if run.WorkspaceID != workspaceID || run.Provider != provider {
			continue
		}
		if latest == nil || run.StartedAt.After(latest.StartedAt) {
			latest = run
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *memSyncRunRepo) ListLogs(_ context.Context, runID string) ([]*domain.SyncRunLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := make([]*domain.SyncRunLog, 0)
	for _, entry := range r.logs {
		if entry.RunID == runID {
			copied := *entry
			logs = append(logs, &copied)
		}
	}
	return logs, nil
}

func (r *memSyncRunRepo) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

// memMetricStore grava campanhas e métricas pela chave natural, como o ON CONFLICT do postgres
type memMetricStore struct {
	mu           sync.Mutex
	campaigns    map[domain.CampaignKey]domain.Campaign
	metrics      map[domain.DailyMetricKey]domain.DailyMetric
	metricsErr   error
	upsertCalled int
}

func newMemMetricStore() *memMetricStore {
	return &memMetricStore{
		campaigns: make(map[domain.CampaignKey]domain.Campaign),
		metrics:   make(map[domain.DailyMetricKey]domain.DailyMetric),
	}
}

func (s *memMetricStore) UpsertCampaigns(_ context.Context, campaigns []domain.Campaign) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	touched := make(map[domain.CampaignKey]struct{})
	for _, campaign := range campaigns {
		s.campaigns[campaign.Key()] = campaign
		touched[campaign.Key()] = struct{}{}
	}
	return len(touched), nil
}

func (s *memMetricStore) UpsertDailyMetrics(_ context.Context, metrics []domain.DailyMetric) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertCalled++
	if s.metricsErr != nil {
		return 0, s.metricsErr
	}
	touched := make(map[domain.DailyMetricKey]struct{})
	for _, metric := range metrics {
		s.metrics[metric.Key()] = metric
		touched[metric.Key()] = struct{}{}
	}
	return len(touched), nil
}

func (s *memMetricStore) ListByCampaign(_ context.Context, workspaceID, externalAccountID, externalCampaignID string, window domain.DateWindow) ([]*domain.DailyMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics := make([]*domain.DailyMetric, 0)
	for key, metric := range s.metrics {
		if key.WorkspaceID == workspaceID && key.ExternalAccountID == externalAccountID &&
			key.ExternalCampaignID == externalCampaignID && window.Contains(key.Date) {
			copied := metric
			metrics = append(metrics, &copied)
		}
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Date < metrics[j].Date })
	return metrics, nil
}

func (s *memMetricStore) metricCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.metrics)
}

type fakeProvider struct {
	provider domain.Provider
	fetch    func(accountID, token string, call int) (*domain.AccountData, error)

	mu    sync.Mutex
	calls map[string]int
}

func newFakeProvider(provider domain.Provider, fetch func(accountID, token string, call int) (*domain.AccountData, error)) *fakeProvider {
	return &fakeProvider{
		provider: provider,
		fetch:    fetch,
		calls:    make(map[string]int),
	}
}

func (p *fakeProvider) Provider() domain.Provider {
	return p.provider
}

func (p *fakeProvider) FetchAccountData(_ context.Context, accountID string, _ domain.DateWindow, accessToken string) (*domain.AccountData, error) {
	p.mu.Lock()
	p.calls[accountID]++
	call := p.calls[accountID]
	p.mu.Unlock()

	return p.fetch(accountID, accessToken, call)
}

func (p *fakeProvider) callsFor(accountID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[accountID]
}

// accountData monta uma campanha com uma métrica por dia informado
func accountData(accountID string, days ...string) *domain.AccountData {
	campaignID := "c-" + accountID
	data := &domain.AccountData{
		Campaigns: []domain.Campaign{{ExternalID: campaignID, Name: fmt.Sprintf("Campanha %s", accountID), Status: "ENABLED"}},
	}

	for _, day := range days {
		metric := domain.DailyMetric{
			ExternalCampaignID: campaignID,
			Date:               day,
			Impressions:        1000,
			Clicks:             10,
			Spend:              domain.MicrosToUnits(1_250_000),
			Conversions:        decimal.NewFromInt(1),
		}
		metric.ComputeDerived()
		data.Metrics = append(data.Metrics, metric)
	}

	return data
}
