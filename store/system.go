package store

import (
	"sync"

	"github.com/tfortune6/perimeter-security/models"
)

// SystemStore holds the single status record. Only the current source can
// change after construction.
type SystemStore struct {
	mu     sync.RWMutex
	status models.SystemStatus
}

// NewSystemStore creates the store from its initial record
func NewSystemStore(initial models.SystemStatus) *SystemStore {
	return &SystemStore{status: initial}
}

// Get returns a copy of the status
func (s *SystemStore) Get() models.SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// setCurrentSource is unexported: the DB checks the id references a video first
func (s *SystemStore) setCurrentSource(id string) models.SystemStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.CurrentSourceID = id
	return s.status
}
