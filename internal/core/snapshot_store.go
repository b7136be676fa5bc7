package core

import (
	"sync"

	"netspeed-monitor/internal/domain"
)

// SnapshotStore keeps the latest reading for readers outside the dispatcher,
// such as HTTP handlers.
type SnapshotStore struct {
	mu      sync.RWMutex
	reading domain.Reading
	ok      bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Present(r domain.Reading) {
	s.mu.Lock()
	s.reading = r
	s.ok = true
	s.mu.Unlock()
}

func (s *SnapshotStore) Get() (domain.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reading, s.ok
}
