package syncing

import (
	"fmt"
	"sync"

	"github.com/vfg2006/ads-sync-api/internal/domain"
)

// runLock impede duas execuções simultâneas para o mesmo (workspace, provider) neste processo
type runLock struct {
	mu      sync.Mutex
	running map[string]struct{}
}

func newRunLock() *runLock {
	return &runLock{
		running: make(map[string]struct{}),
	}
}

func runKey(workspaceID string, provider domain.Provider) string {
	return fmt.Sprintf("%s:%s", workspaceID, provider)
}

func (l *runLock) TryLock(workspaceID string, provider domain.Provider) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := runKey(workspaceID, provider)
	if _, ok := l.running[key]; ok {
		return false
	}

	l.running[key] = struct{}{}
	return true
}

func (l *runLock) Unlock(workspaceID string, provider domain.Provider) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.running, runKey(workspaceID, provider))
}

func (l *runLock) IsLocked(workspaceID string, provider domain.Provider) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.running[runKey(workspaceID, provider)]
	return ok
}
