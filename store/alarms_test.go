package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfortune6/perimeter-security/models"
)

func testAlarms() []models.Alarm {
	out := make([]models.Alarm, 0, 25)
	for i := 0; i < 25; i++ {
		sev := models.SeverityWarning
		if i%3 == 0 {
			sev = models.SeverityCritical
		}
		remark := "Loitering in zone"
		if i%5 == 0 {
			remark = "Intrusion detected"
		}
		out = append(out, models.Alarm{
			ID:       fmt.Sprintf("ALM-2023-%d", 9024-i),
			Time:     fmt.Sprintf("2023-10-%02d 08:00:00", 30-i),
			Severity: sev,
			Status:   models.AlarmPending,
			Remark:   remark,
			Timeline: []models.TimelineEntry{{At: "2023-10-24T08:00:00.000Z", Action: "Alarm raised", By: "AI engine"}},
		})
	}
	return out
}

func TestAlarmQueryPaging(t *testing.T) {
	s := NewAlarmStore(testAlarms())

	tests := []struct {
		name     string
		q        AlarmQuery
		wantLen  int
		wantTot  int
		wantHead string
	}{
		{name: "defaults", q: AlarmQuery{}, wantLen: 10, wantTot: 25, wantHead: "#ALM-2023-9024"},
		{name: "last partial page", q: AlarmQuery{Page: 3, PageSize: ptr(10)}, wantLen: 5, wantTot: 25, wantHead: "#ALM-2023-9004"},
		{name: "past the end", q: AlarmQuery{Page: 9, PageSize: ptr(10)}, wantLen: 0, wantTot: 25},
		{name: "page below one", q: AlarmQuery{Page: -2, PageSize: ptr(5)}, wantLen: 5, wantTot: 25, wantHead: "#ALM-2023-9024"},
		{name: "oversized page", q: AlarmQuery{PageSize: ptr(1000)}, wantLen: 25, wantTot: 25, wantHead: "#ALM-2023-9024"},
		{name: "oversized second page", q: AlarmQuery{Page: 2, PageSize: ptr(1000)}, wantLen: 0, wantTot: 25},
		{name: "zero page size", q: AlarmQuery{PageSize: ptr(0)}, wantLen: 0, wantTot: 25},
		{name: "negative page size", q: AlarmQuery{PageSize: ptr(-4)}, wantLen: 10, wantTot: 25},
		{name: "level filter", q: AlarmQuery{Level: "critical", PageSize: ptr(100)}, wantLen: 9, wantTot: 9},
		{name: "unknown level", q: AlarmQuery{Level: "info"}, wantLen: 0, wantTot: 0},
		{name: "remark query", q: AlarmQuery{Query: "INTRUSION", PageSize: ptr(2)}, wantLen: 2, wantTot: 5},
		{name: "id query", q: AlarmQuery{Query: " alm-2023-901 "}, wantLen: 10, wantTot: 10},
		{name: "date range", q: AlarmQuery{StartDate: "2023-10-20", EndDate: "2023-10-22"}, wantLen: 3, wantTot: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := s.Query(tt.q)
			assert.Equal(t, tt.wantTot, page.Total)
			assert.Len(t, page.List, tt.wantLen)
			assert.NotNil(t, page.List)
			if tt.wantHead != "" {
				require.NotEmpty(t, page.List)
				assert.Equal(t, tt.wantHead, page.List[0].ID)
			}
		})
	}
}

func manyAlarms(n int) []models.Alarm {
	base := time.Date(2023, 10, 24, 8, 0, 0, 0, time.UTC)
	out := make([]models.Alarm, 0, n)
	for i := 0; i < n; i++ {
		sev := models.SeverityWarning
		if i%4 == 0 {
			sev = models.SeverityCritical
		}
		out = append(out, models.Alarm{
			ID:       fmt.Sprintf("ALM-2023-%d", 9000+n-1-i),
			Time:     base.Add(time.Duration(n-i) * 7 * time.Minute).Format("2006-01-02 15:04:05"),
			Severity: sev,
			Status:   models.AlarmPending,
		})
	}
	return out
}

func TestAlarmQueryLengthProperty(t *testing.T) {
	s := NewAlarmStore(manyAlarms(128))
	require.Equal(t, 128, s.Len())

	sizes := []int{0, 1, 2, 3, 5, 7, 10, 12, 50, 100, 127, 128, 150, 200}
	for _, level := range []string{"", "critical", "warning"} {
		for _, pageSize := range sizes {
			for page := 1; page <= 8; page++ {
				got := s.Query(AlarmQuery{Level: level, Page: page, PageSize: ptr(pageSize)})
				want := min(pageSize, max(0, got.Total-(page-1)*pageSize))
				assert.Len(t, got.List, want, "level=%q page=%d size=%d", level, page, pageSize)
			}
		}
	}
}

func TestAlarmQueryLargePages(t *testing.T) {
	s := NewAlarmStore(manyAlarms(128))

	first := s.Query(AlarmQuery{Page: 1, PageSize: ptr(200)})
	assert.Equal(t, 128, first.Total)
	assert.Len(t, first.List, 128)

	second := s.Query(AlarmQuery{Page: 2, PageSize: ptr(200)})
	assert.Equal(t, 128, second.Total)
	assert.Empty(t, second.List)

	tail := s.Query(AlarmQuery{Page: 2, PageSize: ptr(100)})
	require.Len(t, tail.List, 28)
	assert.Equal(t, "#ALM-2023-9027", tail.List[0].ID)
}

func TestAlarmGet(t *testing.T) {
	s := NewAlarmStore(testAlarms())

	bare, err := s.Get("ALM-2023-9010")
	require.NoError(t, err)
	hashed, err := s.Get("#ALM-2023-9010")
	require.NoError(t, err)
	assert.Equal(t, bare, hashed)
	assert.Equal(t, "ALM-2023-9010", bare.ID)
	assert.NotEmpty(t, bare.Timeline)

	_, err = s.Get("ALM-0000-0")
	assert.ErrorIs(t, err, ErrAlarmNotFound)
}

func TestAlarmResolve(t *testing.T) {
	s := NewAlarmStore(testAlarms())
	entry := models.TimelineEntry{At: "2024-01-01T00:00:00.000Z", Action: "Resolved", By: "Admin User"}

	a, err := s.Resolve("#ALM-2023-9010", entry)
	require.NoError(t, err)
	assert.Equal(t, models.AlarmDone, a.Status)
	require.Len(t, a.Timeline, 2)
	assert.Equal(t, entry, a.Timeline[1])

	again, err := s.Resolve("ALM-2023-9010", entry)
	require.NoError(t, err)
	assert.Len(t, again.Timeline, 2)

	_, err = s.Resolve("nope", entry)
	assert.ErrorIs(t, err, ErrAlarmNotFound)
}

func TestAlarmResolveKeepsTimelineOrdered(t *testing.T) {
	s := NewAlarmStore(testAlarms())
	a, err := s.Resolve("ALM-2023-9000", models.TimelineEntry{At: "2000-01-01T00:00:00.000Z", Action: "Resolved"})
	require.NoError(t, err)
	assert.LessOrEqual(t, a.Timeline[0].At, a.Timeline[1].At)
}

func TestAlarmRandom(t *testing.T) {
	s := NewAlarmStore(testAlarms())
	a, ok := s.Random(func(n int) int { return n - 1 })
	require.True(t, ok)
	assert.Equal(t, "ALM-2023-9000", a.ID)

	_, ok = NewAlarmStore(nil).Random(func(int) int { return 0 })
	assert.False(t, ok)
}
