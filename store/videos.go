package store

import (
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/tfortune6/perimeter-security/models"
)

// VideoStore holds uploaded videos, most recent first, and the source list
// projected from them. After every mutation exactly one video is flagged
// demo unless the collection is empty.
type VideoStore struct {
	mu      sync.RWMutex
	videos  []models.Video
	sources []models.Source
}

// NewVideoStore copies seed and establishes the demo invariant
func NewVideoStore(seed []models.Video) *VideoStore {
	s := &VideoStore{videos: append([]models.Video(nil), seed...)}
	s.afterMutation()
	return s
}

// List returns videos whose name contains keyword, case-insensitively.
// An empty keyword returns everything.
func (s *VideoStore) List(keyword string) []models.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return append([]models.Video{}, s.videos...)
	}
	return lo.Filter(s.videos, func(v models.Video, _ int) bool {
		return strings.Contains(strings.ToLower(v.Name), keyword)
	})
}

// Get returns a video by id
func (s *VideoStore) Get(id string) (models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := lo.Find(s.videos, func(v models.Video) bool { return v.ID == id })
	if !ok {
		return models.Video{}, ErrVideoNotFound
	}
	return v, nil
}

// Exists reports whether a video (and so a source) with id exists
func (s *VideoStore) Exists(id string) bool {
	_, err := s.Get(id)
	return err == nil
}

// Demo returns the current demo video
func (s *VideoStore) Demo() (models.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Find(s.videos, func(v models.Video) bool { return v.IsDemo })
}

// Insert places v at the front. The new video is never flagged demo itself;
// it only becomes demo if the collection had no videos before.
func (s *VideoStore) Insert(v models.Video) models.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.IsDemo = false
	s.videos = append([]models.Video{v}, s.videos...)
	s.afterMutation()
	return s.videos[0]
}

// Delete removes the video with id
func (s *VideoStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(s.videos, func(v models.Video) bool { return v.ID == id })
	if !ok {
		return ErrVideoNotFound
	}
	s.videos = append(s.videos[:idx:idx], s.videos[idx+1:]...)
	s.afterMutation()
	return nil
}

// SetDemo clears every demo flag and sets it on id
func (s *VideoStore) SetDemo(id string) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(s.videos, func(v models.Video) bool { return v.ID == id })
	if !ok {
		return models.Video{}, ErrVideoNotFound
	}
	for i := range s.videos {
		s.videos[i].IsDemo = i == idx
	}
	s.afterMutation()
	return s.videos[idx], nil
}

// Sources returns the {id, name} projection of the current videos
func (s *VideoStore) Sources() []models.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Source{}, s.sources...)
}

// Len returns the number of videos
func (s *VideoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.videos)
}

// afterMutation repairs the demo flag and re-derives sources. Caller holds mu.
func (s *VideoStore) afterMutation() {
	if len(s.videos) > 0 {
		demos := lo.CountBy(s.videos, func(v models.Video) bool { return v.IsDemo })
		if demos != 1 {
			for i := range s.videos {
				s.videos[i].IsDemo = i == 0
			}
		}
	}

	s.sources = lo.Map(s.videos, func(v models.Video, _ int) models.Source {
		return models.Source{ID: v.ID, Name: v.Name}
	})
}
