// Package services provides business logic services
package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tfortune6/perimeter-security/models"
	"github.com/tfortune6/perimeter-security/seed"
)

// Live event count bounds
const (
	DefaultEventLimit = 8
	MinEventLimit     = 2
	MaxEventLimit     = 12
)

// EventType is one entry of the live event taxonomy
type EventType struct {
	Type   string
	Level  string
	Remark string
}

// EventTypes is the fixed live event taxonomy
var EventTypes = []EventType{
	{Type: "INTRUSION", Level: "danger", Remark: "Intrusion detected"},
	{Type: "LOITERING", Level: "warning", Remark: "Loitering in zone"},
	{Type: "CROSSING", Level: "warning", Remark: "Line crossing"},
	{Type: "TAMPER", Level: "danger", Remark: "Camera tampering"},
	{Type: "SUSPICIOUS", Level: "warning", Remark: "Target lingering"},
}

// AlarmSampler yields a random existing alarm
type AlarmSampler interface {
	Random(pick func(n int) int) (models.Alarm, bool)
}

// LiveFeed synthesizes dashboard events. Nothing it produces is persisted,
// every call returns a fresh batch.
type LiveFeed struct {
	alarms AlarmSampler
	rand   seed.Rand
	now    func() time.Time
}

// NewLiveFeed creates a synthesizer. now defaults to time.Now.
func NewLiveFeed(alarms AlarmSampler, r seed.Rand, now func() time.Time) *LiveFeed {
	if now == nil {
		now = time.Now
	}
	return &LiveFeed{alarms: alarms, rand: r, now: now}
}

// ClampLimit bounds a requested event count to [MinEventLimit, MaxEventLimit]
func ClampLimit(limit int) int {
	return max(MinEventLimit, min(limit, MaxEventLimit))
}

// ParseLimit reads a limit query value. Empty or unparsable input yields
// DefaultEventLimit; the result is clamped.
func ParseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		limit = DefaultEventLimit
	}
	return ClampLimit(limit)
}

// Generate returns ClampLimit(limit) events stamped for sourceID
func (f *LiveFeed) Generate(limit int, sourceID string) []models.LiveEvent {
	n := ClampLimit(limit)
	now := f.now()
	items := make([]models.LiveEvent, 0, n)

	for i := 0; i < n; i++ {
		t := seed.Pick(f.rand, EventTypes)
		ev := models.LiveEvent{
			ID:       fmt.Sprintf("evt-%d-%d-%d", now.UnixMilli(), i, seed.Between(f.rand, 10, 99)),
			Type:     t.Type,
			Level:    t.Level,
			Time:     now.Format(seed.ClockLayout),
			Zone:     seed.Pick(f.rand, seed.AlarmZones),
			SourceID: sourceID,
		}
		if alarm, ok := f.alarms.Random(f.rand.Intn); ok {
			ev.ThumbURL = alarm.Thumb
			ev.AlarmID = alarm.ID
		}
		items = append(items, ev)
	}
	return items
}
