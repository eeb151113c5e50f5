// Package store holds the in-memory resource collections of the mock
// backend. Each collection guards itself with a RWMutex; DB serializes the
// mutations that span several collections.
package store

import (
	"errors"
	"sync"

	"github.com/tfortune6/perimeter-security/models"
)

var (
	ErrVideoNotFound  = errors.New("video not found")
	ErrZoneNotFound   = errors.New("zone not found")
	ErrAlarmNotFound  = errors.New("alarm not found")
	ErrInvalidPolygon = errors.New("polygon requires at least 3 points")
	ErrUnknownSource  = errors.New("source does not exist")
)

// Dataset is the seed state a DB is built from
type Dataset struct {
	User     models.User               `json:"user"`
	System   models.SystemStatus       `json:"system"`
	Videos   []models.Video            `json:"videos"`
	Zones    map[string][]models.Zone  `json:"zones"`
	Overlays map[string]models.Overlay `json:"overlays"`
	Alarms   []models.Alarm            `json:"alarms"`
}

// DB is the process-wide state of the mock backend
type DB struct {
	user models.User

	System   *SystemStore
	Videos   *VideoStore
	Zones    *ZoneStore
	Overlays *OverlayStore
	Alarms   *AlarmStore

	// mu serializes cross-collection mutations
	mu sync.Mutex
}

// New builds a DB from d. newZoneID generates candidate zone ids.
func New(d Dataset, newZoneID IDFunc) *DB {
	db := &DB{
		user:     d.User,
		System:   NewSystemStore(d.System),
		Videos:   NewVideoStore(d.Videos),
		Zones:    NewZoneStore(d.Zones, newZoneID),
		Overlays: NewOverlayStore(d.Overlays),
		Alarms:   NewAlarmStore(d.Alarms),
	}
	if cur := db.System.Get().CurrentSourceID; cur == "" || !db.Videos.Exists(cur) {
		db.System.setCurrentSource(db.fallbackSource())
	}
	return db
}

// User returns the operator profile
func (db *DB) User() models.User {
	return db.user
}

// UploadVideo inserts v at the front and creates its empty zone and overlay
// containers. If v.ID is taken, newID is asked for another.
func (db *DB) UploadVideo(v models.Video, newID IDFunc) models.Video {
	db.mu.Lock()
	defer db.mu.Unlock()

	for db.Videos.Exists(v.ID) {
		v.ID = newID()
	}
	row := db.Videos.Insert(v)
	db.Zones.Ensure(row.ID)
	db.Overlays.Ensure(row.ID)
	if db.System.Get().CurrentSourceID == "" {
		db.System.setCurrentSource(row.ID)
	}
	return row
}

// DeleteVideo removes the video and the zones and overlays bound to it. If
// it was the current source, the current source moves to the demo video.
func (db *DB) DeleteVideo(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.Videos.Delete(id); err != nil {
		return err
	}
	db.Zones.DropSource(id)
	db.Overlays.Drop(id)

	if db.System.Get().CurrentSourceID == id {
		db.System.setCurrentSource(db.fallbackSource())
	}
	return nil
}

// SetCurrentSource points the system status at an existing source
func (db *DB) SetCurrentSource(id string) (models.SystemStatus, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.Videos.Exists(id) {
		return models.SystemStatus{}, ErrUnknownSource
	}
	return db.System.setCurrentSource(id), nil
}

// CurrentSourceID returns the id of the selected source
func (db *DB) CurrentSourceID() string {
	return db.System.Get().CurrentSourceID
}

func (db *DB) fallbackSource() string {
	if demo, ok := db.Videos.Demo(); ok {
		return demo.ID
	}
	return ""
}
