package store

import (
	"sync"

	"github.com/tfortune6/perimeter-security/models"
)

// Zone defaults applied on create
const (
	DefaultZoneName      = "New zone"
	DefaultZoneType      = "core"
	DefaultZoneThreshold = 3
	MinPolygonPoints     = 3
)

// IDFunc generates a candidate id. Collisions are retried by the caller.
type IDFunc func() string

// ZoneStore partitions zones by source id. Zone ids are unique across all
// sources; index maps each zone id to the source holding it.
type ZoneStore struct {
	mu       sync.RWMutex
	bySource map[string][]models.Zone
	index    map[string]string
	newID    IDFunc
}

// NewZoneStore copies seed. newID must not be nil.
func NewZoneStore(seed map[string][]models.Zone, newID IDFunc) *ZoneStore {
	s := &ZoneStore{
		bySource: make(map[string][]models.Zone, len(seed)),
		index:    make(map[string]string),
		newID:    newID,
	}
	for sourceID, zones := range seed {
		list := make([]models.Zone, 0, len(zones))
		for _, z := range zones {
			if _, dup := s.index[z.ID]; dup {
				continue
			}
			s.index[z.ID] = sourceID
			list = append(list, cloneZone(z))
		}
		s.bySource[sourceID] = list
	}
	return s
}

// List returns the zones of sourceID, creating an empty list on first access
func (s *ZoneStore) List(sourceID string) []models.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()

	zones := s.ensure(sourceID)
	out := make([]models.Zone, len(zones))
	for i, z := range zones {
		out[i] = cloneZone(z)
	}
	return out
}

// Count returns the number of zones configured for sourceID
func (s *ZoneStore) Count(sourceID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bySource[sourceID])
}

// Ensure creates an empty list for sourceID if none exists
func (s *ZoneStore) Ensure(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensure(sourceID)
}

// DropSource forgets every zone of sourceID
func (s *ZoneStore) DropSource(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, z := range s.bySource[sourceID] {
		delete(s.index, z.ID)
	}
	delete(s.bySource, sourceID)
}

// Create validates the polygon, applies defaults and prepends the zone to
// sourceID. A rejected zone leaves the store untouched.
func (s *ZoneStore) Create(sourceID string, p models.ZonePatch) (models.Zone, error) {
	if len(p.PolygonPoints) < MinPolygonPoints {
		return models.Zone{}, ErrInvalidPolygon
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z := models.Zone{
		ID:            s.uniqueID(),
		Name:          DefaultZoneName,
		Type:          DefaultZoneType,
		Threshold:     DefaultZoneThreshold,
		Motion:        true,
		PolygonPoints: append([]models.Point(nil), p.PolygonPoints...),
	}
	if p.Name != nil && *p.Name != "" {
		z.Name = *p.Name
	}
	if p.Type != nil && *p.Type != "" {
		z.Type = *p.Type
	}
	if p.Threshold != nil {
		z.Threshold = *p.Threshold
	}
	if p.Motion != nil {
		z.Motion = *p.Motion
	}

	zones := s.ensure(sourceID)
	s.bySource[sourceID] = append([]models.Zone{z}, zones...)
	s.index[z.ID] = sourceID
	return cloneZone(z), nil
}

// Update overwrites the provided fields of zone id, whichever source holds it
func (s *ZoneStore) Update(id string, p models.ZonePatch) (models.Zone, error) {
	if p.PolygonPoints != nil && len(p.PolygonPoints) < MinPolygonPoints {
		return models.Zone{}, ErrInvalidPolygon
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sourceID, idx, ok := s.locate(id)
	if !ok {
		return models.Zone{}, ErrZoneNotFound
	}

	z := &s.bySource[sourceID][idx]
	if p.Name != nil {
		z.Name = *p.Name
	}
	if p.Type != nil {
		z.Type = *p.Type
	}
	if p.Threshold != nil {
		z.Threshold = *p.Threshold
	}
	if p.Motion != nil {
		z.Motion = *p.Motion
	}
	if p.PolygonPoints != nil {
		z.PolygonPoints = append([]models.Point(nil), p.PolygonPoints...)
	}
	return cloneZone(*z), nil
}

// Delete removes zone id, whichever source holds it
func (s *ZoneStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sourceID, idx, ok := s.locate(id)
	if !ok {
		return ErrZoneNotFound
	}

	zones := s.bySource[sourceID]
	s.bySource[sourceID] = append(zones[:idx:idx], zones[idx+1:]...)
	delete(s.index, id)
	return nil
}

func (s *ZoneStore) ensure(sourceID string) []models.Zone {
	zones, ok := s.bySource[sourceID]
	if !ok {
		zones = []models.Zone{}
		s.bySource[sourceID] = zones
	}
	return zones
}

func (s *ZoneStore) locate(id string) (string, int, bool) {
	sourceID, ok := s.index[id]
	if !ok {
		return "", 0, false
	}
	for i, z := range s.bySource[sourceID] {
		if z.ID == id {
			return sourceID, i, true
		}
	}
	return "", 0, false
}

func (s *ZoneStore) uniqueID() string {
	for {
		id := s.newID()
		if _, taken := s.index[id]; !taken {
			return id
		}
	}
}

func cloneZone(z models.Zone) models.Zone {
	z.PolygonPoints = append([]models.Point(nil), z.PolygonPoints...)
	return z
}
