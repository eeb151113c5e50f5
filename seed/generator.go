// Package seed builds the randomized dataset the mock backend starts from.
package seed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tfortune6/perimeter-security/models"
	"github.com/tfortune6/perimeter-security/store"
)

// Dataset sizes
const (
	DefaultAlarmCount = 128
	DefaultVideoCount = 30
)

// DefaultSourceID is the source the seeded zone and overlays belong to
const DefaultSourceID = "vid-01"

// PreviewURL is the playback reference of every generated video
const PreviewURL = "https://interactive-examples.mdn.mozilla.net/media/cc0-videos/flower.mp4"

var thumbs = []string{
	"https://images.perimeter.local/thumbs/gate-north.jpg",
	"https://images.perimeter.local/thumbs/parking-west.jpg",
	"https://images.perimeter.local/thumbs/warehouse-dock.jpg",
	"https://images.perimeter.local/thumbs/fence-east.jpg",
}

// AlarmZones names the detection areas alarms and live events are raised in
var AlarmZones = []string{"Zone A - North Gate", "Zone B - Parking", "Zone C - Warehouse", "Zone D - Fence"}

var targets = []string{"Person", "Vehicle", "Unknown"}

var remarks = []string{
	"Intrusion detected",
	"Loitering in zone",
	"Line crossing",
	"Camera tampering",
	"Target lingering",
}

var videoNames = []string{
	"main_gate_entrance",
	"parking_lot_cam_01",
	"warehouse_a_02",
	"north_fence_patrol",
	"east_gate",
	"dock_area",
	"perimeter_night",
}

// Qualities are the quality labels a video can carry
var Qualities = []string{"720p", "1080p", "2K", "4K HDR"}

var exts = []string{"MP4", "MKV", "AVI"}

// Config sizes the generated dataset. Location defaults to time.Local.
type Config struct {
	Alarms   int
	Videos   int
	Location *time.Location
}

// Generate builds a complete dataset from r
func Generate(r Rand, cfg Config) store.Dataset {
	if cfg.Alarms <= 0 {
		cfg.Alarms = DefaultAlarmCount
	}
	if cfg.Videos <= 0 {
		cfg.Videos = DefaultVideoCount
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return store.Dataset{
		User: models.User{
			ID:        "u_admin",
			Name:      "Admin User",
			Role:      "System Administrator",
			AvatarURL: "https://images.perimeter.local/avatars/admin.png",
		},
		System: models.SystemStatus{
			Online:          true,
			Version:         "v2.4.1 (Stable)",
			FPS:             24,
			CurrentSourceID: DefaultSourceID,
		},
		Videos: GenerateVideos(r, cfg.Videos, cfg.Location),
		Zones: map[string][]models.Zone{
			DefaultSourceID: {{
				ID:            "zone-01",
				Name:          "Warehouse entrance restricted area",
				Type:          "core",
				Threshold:     3,
				Motion:        true,
				PolygonPoints: []models.Point{{200, 300}, {350, 280}, {500, 350}, {450, 420}, {220, 400}},
			}},
		},
		Overlays: map[string]models.Overlay{
			DefaultSourceID: {Boxes: []models.OverlayBox{
				{ID: "b1", X: 0.45, Y: 0.35, W: 0.12, H: 0.35, Label: "PERSON", Score: 0.98, Level: models.LevelDanger},
				{ID: "b2", X: 0.72, Y: 0.4, W: 0.18, H: 0.16, Label: "VEHICLE", Score: 0.85, Level: models.LevelWarning},
				{ID: "b3", X: 0.1, Y: 0.72, W: 0.08, H: 0.22, Label: "PERSON", Score: 0.99, Level: models.LevelSuccess},
			}},
		},
		Alarms: GenerateAlarms(r, cfg.Alarms, cfg.Location),
	}
}

// GenerateAlarms returns count alarms 3-15 minutes apart, newest first
func GenerateAlarms(r Rand, count int, loc *time.Location) []models.Alarm {
	at := time.Date(2023, 10, 24, 8, 0, 0, 0, loc)
	items := make([]models.Alarm, 0, count)

	for i := 0; i < count; i++ {
		at = at.Add(time.Duration(Between(r, 3, 15)) * time.Minute)

		severity := models.SeverityWarning
		if r.Float64() < 0.35 {
			severity = models.SeverityCritical
		}
		status := models.AlarmDone
		if r.Float64() < 0.55 {
			status = models.AlarmPending
		}

		followUp := models.TimelineEntry{Action: "Awaiting handling", By: "System"}
		if status == models.AlarmDone {
			followUp = models.TimelineEntry{Action: "Resolved", By: "Administrator"}
		}
		followUp.At = FormatISO(at.Add(time.Duration(Between(r, 1, 10)) * time.Minute))

		items = append(items, models.Alarm{
			ID:        fmt.Sprintf("ALM-%d-%d", at.Year(), 9000+i),
			Thumb:     Pick(r, thumbs),
			Time:      FormatDateTime(at),
			Target:    Pick(r, targets),
			Severity:  severity,
			Status:    status,
			Remark:    Pick(r, remarks),
			Zone:      Pick(r, AlarmZones),
			Snapshots: []string{},
			Timeline: []models.TimelineEntry{
				{At: FormatISO(at), Action: "Alarm raised", By: "AI engine"},
				followUp,
			},
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Time > items[j].Time })
	return items
}

// GenerateVideos returns count videos uploaded 30-180 minutes apart. The
// first one is the demo video.
func GenerateVideos(r Rand, count int, loc *time.Location) []models.Video {
	at := time.Date(2023, 10, 20, 10, 0, 0, 0, loc)
	list := make([]models.Video, 0, count)

	for i := 0; i < count; i++ {
		if i > 0 {
			at = at.Add(time.Duration(Between(r, 30, 180)) * time.Minute)
		}
		ext := Pick(r, exts)

		list = append(list, models.Video{
			ID:         fmt.Sprintf("vid-%02d", i+1),
			Name:       fmt.Sprintf("%s_%02d.%s", Pick(r, videoNames), Between(r, 1, 30), strings.ToLower(ext)),
			Ext:        ext,
			Quality:    Pick(r, Qualities),
			Size:       FormatSize(Between(r, 50, 900)),
			Duration:   FormatDuration(Between(r, 30, 20*60)),
			UploadAt:   at.Format(MinuteLayout),
			IsDemo:     i == 0,
			PreviewURL: PreviewURL,
		})
	}
	return list
}

// Upload describes a received file. A zero Upload stands for an upload
// without file content.
type Upload struct {
	FileName string
	Bytes    int64
}

// UploadedVideo builds the record of a new upload received at now
func UploadedVideo(r Rand, u Upload, now time.Time) models.Video {
	v := models.Video{
		ID:         HexID(r, "vid-"),
		Name:       fmt.Sprintf("upload_%d.mp4", now.UnixMilli()),
		Ext:        "MP4",
		Quality:    Pick(r, Qualities),
		Size:       FormatSize(Between(r, 20, 800)),
		Duration:   FormatDuration(Between(r, 10, 10*60)),
		UploadAt:   now.Format(MinuteLayout),
		PreviewURL: PreviewURL,
	}

	if u.FileName != "" {
		v.Name = u.FileName
		if dot := strings.LastIndex(u.FileName, "."); dot >= 0 && dot < len(u.FileName)-1 {
			v.Ext = strings.ToUpper(u.FileName[dot+1:])
		}
		v.Size = FormatBytes(u.Bytes)
	}
	return v
}
