package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SyncManager hands out one Synchronizer per signed-in session. Each
// session edits exactly one board at a time, so the synchronizer is the
// session's unit of state.
type SyncManager struct {
	mu       sync.Mutex
	sessions map[string]*Synchronizer

	store      boardStore
	classifier dayClassifier
	logger     *zap.Logger
	debounce   time.Duration
}

// NewSyncManager constructs the manager.
func NewSyncManager(store boardStore, classifier dayClassifier, logger *zap.Logger, debounce time.Duration) *SyncManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncManager{
		sessions:   make(map[string]*Synchronizer),
		store:      store,
		classifier: classifier,
		logger:     logger,
		debounce:   debounce,
	}
}

// ForSession returns the session's synchronizer, creating it on first use.
func (m *SyncManager) ForSession(sessionID, teacherID string) *Synchronizer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[sessionID]; ok {
		return existing
	}
	synchronizer := NewSynchronizer(teacherID, m.store, m.classifier, m.logger.With(zap.String("session_id", sessionID)), m.debounce)
	m.sessions[sessionID] = synchronizer
	return synchronizer
}

// Release flushes and discards the session's synchronizer, typically on
// sign-out or session expiry.
func (m *SyncManager) Release(ctx context.Context, sessionID string) {
	m.mu.Lock()
	synchronizer, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if ok {
		synchronizer.Flush(ctx)
	}
}
