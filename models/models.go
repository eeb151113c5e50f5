package models

import (
	"encoding/json"
	"errors"
)

// AlarmSeverity enum
type AlarmSeverity string

const (
	SeverityCritical AlarmSeverity = "critical"
	SeverityWarning  AlarmSeverity = "warning"
)

// AlarmStatus enum
type AlarmStatus string

const (
	AlarmPending AlarmStatus = "pending"
	AlarmDone    AlarmStatus = "done"
)

// OverlayLevel enum
type OverlayLevel string

const (
	LevelDanger  OverlayLevel = "danger"
	LevelWarning OverlayLevel = "warning"
	LevelSuccess OverlayLevel = "success"
)

// SystemStatus is the single platform status record
type SystemStatus struct {
	Online          bool   `json:"online"`
	Version         string `json:"version"`
	FPS             int    `json:"fps"`
	CurrentSourceID string `json:"currentSourceId"`
}

// Video is an uploaded video asset. Exactly one video is the demo video
// whenever the collection is non-empty.
type Video struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Ext        string `json:"ext"`
	Quality    string `json:"quality"`
	Size       string `json:"size"`
	Duration   string `json:"duration"`
	UploadAt   string `json:"uploadAt"`
	IsDemo     bool   `json:"isDemo"`
	PreviewURL string `json:"previewUrl"`
}

// Source is the channel projection of a video
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Point is a polygon vertex. It serializes as [x, y] and also accepts
// {"x": .., "y": ..} on input.
type Point [2]float64

var errInvalidPoint = errors.New("point must be [x, y] or {\"x\", \"y\"}")

// UnmarshalJSON implements json.Unmarshaler
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return errInvalidPoint
		}
		p[0], p[1] = pair[0], pair[1]
		return nil
	}

	var obj struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.X == nil || obj.Y == nil {
		return errInvalidPoint
	}
	p[0], p[1] = *obj.X, *obj.Y
	return nil
}

// X returns the horizontal coordinate
func (p Point) X() float64 { return p[0] }

// Y returns the vertical coordinate
func (p Point) Y() float64 { return p[1] }

// Zone is a polygonal detection region bound to a source
type Zone struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Threshold     int     `json:"threshold"`
	Motion        bool    `json:"motion"`
	PolygonPoints []Point `json:"polygonPoints"`
}

// ZonePatch carries the optional fields of a zone create or update.
// Nil fields are left untouched.
type ZonePatch struct {
	Name          *string `json:"name,omitempty"`
	Type          *string `json:"type,omitempty"`
	Threshold     *int    `json:"threshold,omitempty"`
	Motion        *bool   `json:"motion,omitempty"`
	PolygonPoints []Point `json:"polygonPoints,omitempty"`
}

// OverlayBox is a normalized bounding box over the live view
type OverlayBox struct {
	ID    string       `json:"id"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	W     float64      `json:"w"`
	H     float64      `json:"h"`
	Label string       `json:"label"`
	Score float64      `json:"score"`
	Level OverlayLevel `json:"level"`
}

// Overlay is the box set of one source
type Overlay struct {
	Boxes []OverlayBox `json:"boxes"`
}

// TimelineEntry is one step in an alarm's history
type TimelineEntry struct {
	At     string `json:"at"`
	Action string `json:"action"`
	By     string `json:"by"`
}

// Alarm model
type Alarm struct {
	ID        string          `json:"id"`
	Thumb     string          `json:"thumb"`
	Time      string          `json:"time"`
	Target    string          `json:"target"`
	Severity  AlarmSeverity   `json:"severity"`
	Status    AlarmStatus     `json:"status"`
	Remark    string          `json:"remark"`
	Zone      string          `json:"zone"`
	Snapshots []string        `json:"snapshots"`
	Timeline  []TimelineEntry `json:"timeline"`
}

// AlarmSummary is the list projection of an alarm
type AlarmSummary struct {
	ID       string        `json:"id"`
	Thumb    string        `json:"thumb"`
	Time     string        `json:"time"`
	Target   string        `json:"target"`
	Severity AlarmSeverity `json:"severity"`
	Status   AlarmStatus   `json:"status"`
}

// AlarmPage is one page of alarm summaries
type AlarmPage struct {
	List  []AlarmSummary `json:"list"`
	Total int            `json:"total"`
}

// LiveEvent is a synthesized dashboard event
type LiveEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Level    string `json:"level"`
	Time     string `json:"time"`
	Zone     string `json:"zone"`
	SourceID string `json:"sourceId"`
	ThumbURL string `json:"thumbUrl"`
	AlarmID  string `json:"alarmId"`
}

// ConfigSaveResult acknowledges a config save
type ConfigSaveResult struct {
	SourceID  string `json:"sourceId"`
	SavedAt   string `json:"savedAt"`
	ZoneCount int    `json:"zoneCount"`
}
