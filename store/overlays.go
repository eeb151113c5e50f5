package store

import (
	"sync"

	"github.com/tfortune6/perimeter-security/models"
)

// OverlayStore maps a source id to its static box list
type OverlayStore struct {
	mu       sync.RWMutex
	bySource map[string]models.Overlay
}

// NewOverlayStore copies seed
func NewOverlayStore(seed map[string]models.Overlay) *OverlayStore {
	s := &OverlayStore{bySource: make(map[string]models.Overlay, len(seed))}
	for id, o := range seed {
		s.bySource[id] = cloneOverlay(o)
	}
	return s
}

// Get returns the overlay of sourceID, or an empty box list for an unknown id
func (s *OverlayStore) Get(sourceID string) models.Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.bySource[sourceID]
	if !ok {
		return models.Overlay{Boxes: []models.OverlayBox{}}
	}
	return cloneOverlay(o)
}

// Ensure creates an empty container for sourceID if none exists
func (s *OverlayStore) Ensure(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bySource[sourceID]; !ok {
		s.bySource[sourceID] = models.Overlay{Boxes: []models.OverlayBox{}}
	}
}

// Drop forgets the overlay of sourceID
func (s *OverlayStore) Drop(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bySource, sourceID)
}

func cloneOverlay(o models.Overlay) models.Overlay {
	return models.Overlay{Boxes: append([]models.OverlayBox{}, o.Boxes...)}
}
