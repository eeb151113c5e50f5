package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfortune6/perimeter-security/models"
)

func testDataset() Dataset {
	return Dataset{
		User:   models.User{ID: "u_admin", Name: "Admin User"},
		System: models.SystemStatus{Online: true, Version: "v2.4.1 (Stable)", FPS: 24, CurrentSourceID: "vid-01"},
		Videos: testVideos(3),
		Zones: map[string][]models.Zone{
			"vid-01": {{ID: "zone-01", Name: "Gate", PolygonPoints: triangle}},
		},
		Overlays: map[string]models.Overlay{
			"vid-01": {Boxes: []models.OverlayBox{{ID: "b1", Label: "PERSON"}}},
		},
		Alarms: testAlarms(),
	}
}

func TestNewDB(t *testing.T) {
	db := New(testDataset(), sequentialIDs())
	assert.Equal(t, "vid-01", db.CurrentSourceID())
	assert.Equal(t, "Admin User", db.User().Name)
	assert.Equal(t, 25, db.Alarms.Len())

	t.Run("dangling current source is repaired", func(t *testing.T) {
		d := testDataset()
		d.System.CurrentSourceID = "vid-99"
		db := New(d, sequentialIDs())
		assert.Equal(t, "vid-01", db.CurrentSourceID())
	})
}

func TestDBUploadVideo(t *testing.T) {
	db := New(testDataset(), sequentialIDs())
	row := db.UploadVideo(models.Video{ID: "vid-abc123", Name: "upload.mp4"}, sequentialIDs())

	assert.False(t, row.IsDemo)
	assert.Equal(t, "vid-abc123", db.Videos.Sources()[0].ID)
	assert.Empty(t, db.Zones.List("vid-abc123"))
	assert.Empty(t, db.Overlays.Get("vid-abc123").Boxes)

	demo, ok := db.Videos.Demo()
	require.True(t, ok)
	assert.Equal(t, "vid-01", demo.ID)
}

func TestDBUploadVideoRetriesTakenID(t *testing.T) {
	db := New(testDataset(), sequentialIDs())
	row := db.UploadVideo(models.Video{ID: "vid-01", Name: "dup.mp4"}, sequentialIDs("vid-02", "vid-fresh"))
	assert.Equal(t, "vid-fresh", row.ID)
	assert.Equal(t, 4, db.Videos.Len())
}

func TestDBDeleteVideo(t *testing.T) {
	t.Run("current source moves to demo", func(t *testing.T) {
		db := New(testDataset(), sequentialIDs())
		require.NoError(t, db.DeleteVideo("vid-01"))

		demo, ok := db.Videos.Demo()
		require.True(t, ok)
		assert.Equal(t, "vid-02", demo.ID)
		assert.Equal(t, "vid-02", db.CurrentSourceID())
		assert.Zero(t, db.Zones.Count("vid-01"))
		assert.Empty(t, db.Overlays.Get("vid-01").Boxes)
	})

	t.Run("other source keeps current", func(t *testing.T) {
		db := New(testDataset(), sequentialIDs())
		require.NoError(t, db.DeleteVideo("vid-03"))
		assert.Equal(t, "vid-01", db.CurrentSourceID())
		assert.Equal(t, 1, db.Zones.Count("vid-01"))
	})

	t.Run("last video clears current", func(t *testing.T) {
		d := testDataset()
		d.Videos = testVideos(1)
		db := New(d, sequentialIDs())
		require.NoError(t, db.DeleteVideo("vid-01"))
		assert.Empty(t, db.CurrentSourceID())

		row := db.UploadVideo(models.Video{ID: "vid-new", Name: "n.mp4"}, sequentialIDs())
		assert.True(t, row.IsDemo)
		assert.Equal(t, "vid-new", db.CurrentSourceID())
	})

	t.Run("missing", func(t *testing.T) {
		db := New(testDataset(), sequentialIDs())
		assert.ErrorIs(t, db.DeleteVideo("vid-99"), ErrVideoNotFound)
		assert.Equal(t, 3, db.Videos.Len())
	})
}

func TestDBSetCurrentSource(t *testing.T) {
	db := New(testDataset(), sequentialIDs())

	status, err := db.SetCurrentSource("vid-02")
	require.NoError(t, err)
	assert.Equal(t, "vid-02", status.CurrentSourceID)
	assert.True(t, status.Online)
	assert.Equal(t, 24, status.FPS)

	_, err = db.SetCurrentSource("vid-99")
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.Equal(t, "vid-02", db.CurrentSourceID())
}

func TestOverlayStore(t *testing.T) {
	s := NewOverlayStore(map[string]models.Overlay{
		"vid-01": {Boxes: []models.OverlayBox{{ID: "b1"}}},
	})

	assert.Len(t, s.Get("vid-01").Boxes, 1)

	unknown := s.Get("nope")
	assert.NotNil(t, unknown.Boxes)
	assert.Empty(t, unknown.Boxes)

	got := s.Get("vid-01")
	got.Boxes[0].ID = "mutated"
	assert.Equal(t, "b1", s.Get("vid-01").Boxes[0].ID)
}
