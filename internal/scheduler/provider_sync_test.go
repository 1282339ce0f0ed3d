package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/ads-sync-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestService(connectionRepo *mocks.MockConnectionRepository, syncer *syncmocks.MockSyncer, maxJobs int) *ProviderSyncService {
	return &ProviderSyncService{
		config: ProviderSyncConfig{
			CronSchedule:      "0 3 * * *",
			LookbackDays:      7,
			MaxConcurrentJobs: maxJobs,
			SyncEnabled:       true,
		},
		connectionRepo: connectionRepo,
		syncer:         syncer,
	}
}

func TestProviderSyncService_syncAllConnections(t *testing.T) {
	connections := []*domain.Connection{
		{ID: "1", WorkspaceID: "ws-1", Provider: domain.ProviderGoogle},
		{ID: "2", WorkspaceID: "ws-1", Provider: domain.ProviderMeta},
		{ID: "3", WorkspaceID: "ws-2", Provider: domain.ProviderMeta},
	}

	tests := []struct {
		name        string
		setup       func(repo *mocks.MockConnectionRepository, syncer *syncmocks.MockSyncer)
		wantSummary CycleSummary
	}{
		{
			name: "Sincroniza todas as conexões ativas",
			setup: func(repo *mocks.MockConnectionRepository, syncer *syncmocks.MockSyncer) {
				repo.EXPECT().ListActive(gomock.Any()).Return(connections, nil)
				for _, conn := range connections {
					syncer.EXPECT().
						Sync(gomock.Any(), conn.WorkspaceID, conn.Provider, 7).
						Return(&domain.SyncResult{RunID: "run-" + conn.ID, Status: domain.SyncRunStatusCompleted}, nil)
				}
			},
			wantSummary: CycleSummary{Connections: 3, Completed: 3},
		},
		{
			name: "Falha de uma conexão não interrompe as demais",
			setup: func(repo *mocks.MockConnectionRepository, syncer *syncmocks.MockSyncer) {
				repo.EXPECT().ListActive(gomock.Any()).Return(connections, nil)
				syncer.EXPECT().
					Sync(gomock.Any(), "ws-1", domain.ProviderGoogle, 7).
					Return(&domain.SyncResult{RunID: "run-1", Status: domain.SyncRunStatusFailed}, syncing.ErrReconnectRequired)
				syncer.EXPECT().
					Sync(gomock.Any(), "ws-1", domain.ProviderMeta, 7).
					Return(nil, syncing.ErrSyncAlreadyRunning)
				syncer.EXPECT().
					Sync(gomock.Any(), "ws-2", domain.ProviderMeta, 7).
					Return(&domain.SyncResult{RunID: "run-3", Status: domain.SyncRunStatusCompleted}, nil)
			},
			wantSummary: CycleSummary{Connections: 3, Completed: 1, Failed: 1, Skipped: 1},
		},
		{
			name: "Nenhuma conexão ativa",
			setup: func(repo *mocks.MockConnectionRepository, syncer *syncmocks.MockSyncer) {
				repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Connection{}, nil)
			},
			wantSummary: CycleSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := mocks.NewMockConnectionRepository(ctrl)
			syncer := syncmocks.NewMockSyncer(ctrl)
			tt.setup(repo, syncer)

			service := newTestService(repo, syncer, 2)
			service.syncAllConnections(context.Background())

			status := service.GetStatus()
			assert.Equal(t, tt.wantSummary, status["last_cycle_summary"])
			assert.NotEmpty(t, status["last_cycle_id"])
			assert.Equal(t, false, status["sync_running"])
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
		})
	}
}

func TestProviderSyncService_ListActiveError(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockConnectionRepository(ctrl)
	syncer := syncmocks.NewMockSyncer(ctrl)
	repo.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("connection refused"))

	service := newTestService(repo, syncer, 1)
	service.syncAllConnections(context.Background())

	status := service.GetStatus()
	assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
}

func TestProviderSyncService_RespectsMaxConcurrentJobs(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockConnectionRepository(ctrl)
	syncer := syncmocks.NewMockSyncer(ctrl)

	connections := make([]*domain.Connection, 0, 6)
	for _, ws := range []string{"a", "b", "c", "d", "e", "f"} {
		connections = append(connections, &domain.Connection{WorkspaceID: ws, Provider: domain.ProviderGoogle})
	}
	repo.EXPECT().ListActive(gomock.Any()).Return(connections, nil)

	var inFlight, maxInFlight atomic.Int32
	syncer.EXPECT().
		Sync(gomock.Any(), gomock.Any(), domain.ProviderGoogle, 7).
		DoAndReturn(func(_ context.Context, workspaceID string, _ domain.Provider, _ int) (*domain.SyncResult, error) {
			current := inFlight.Add(1)
			for {
				seen := maxInFlight.Load()
				if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return &domain.SyncResult{RunID: "run-" + workspaceID, Status: domain.SyncRunStatusCompleted}, nil
		}).
		Times(6)

	service := newTestService(repo, syncer, 2)
	service.syncAllConnections(context.Background())

	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
	assert.Equal(t, CycleSummary{Connections: 6, Completed: 6}, service.GetStatus()["last_cycle_summary"])
}

func TestProviderSyncService_TriggerManualSyncWhileRunning(t *testing.T) {
	service := &ProviderSyncService{syncRunning: true}

	assert.False(t, service.TriggerManualSync())
}

func TestProviderSyncService_StartDisabled(t *testing.T) {
	service := &ProviderSyncService{config: ProviderSyncConfig{SyncEnabled: false}}

	assert.NoError(t, service.Start(context.Background()))
}
