package store

import (
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/tfortune6/perimeter-security/models"
)

// Alarm paging defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// AlarmQuery filters and pages the alarm list. StartDate and EndDate are
// inclusive YYYY-MM-DD bounds on the alarm time. A nil or negative PageSize
// means DefaultPageSize; any other value slices literally, so 0 yields an
// empty list.
type AlarmQuery struct {
	Query     string
	Level     string
	StartDate string
	EndDate   string
	Page      int
	PageSize  *int
}

// AlarmStore holds generated alarms ordered newest first
type AlarmStore struct {
	mu     sync.RWMutex
	alarms []models.Alarm
	byID   map[string]int
}

// NewAlarmStore copies seed
func NewAlarmStore(seed []models.Alarm) *AlarmStore {
	s := &AlarmStore{
		alarms: make([]models.Alarm, 0, len(seed)),
		byID:   make(map[string]int, len(seed)),
	}
	for _, a := range seed {
		if _, dup := s.byID[a.ID]; dup {
			continue
		}
		s.byID[a.ID] = len(s.alarms)
		s.alarms = append(s.alarms, cloneAlarm(a))
	}
	return s
}

// Query returns one page of summaries. Total counts the filtered set before
// paging.
func (s *AlarmStore) Query(q AlarmQuery) models.AlarmPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, pageSize := q.Page, DefaultPageSize
	if page < 1 {
		page = DefaultPage
	}
	if q.PageSize != nil && *q.PageSize >= 0 {
		pageSize = *q.PageSize
	}

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	matched := lo.Filter(s.alarms, func(a models.Alarm, _ int) bool {
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.ID), needle) &&
			!strings.Contains(strings.ToLower(a.Remark), needle) {
			return false
		}
		if q.Level != "" && string(a.Severity) != q.Level {
			return false
		}
		if q.StartDate != "" && datePart(a.Time) < q.StartDate {
			return false
		}
		if q.EndDate != "" && datePart(a.Time) > q.EndDate {
			return false
		}
		return true
	})

	total := len(matched)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return models.AlarmPage{
		List:  lo.Map(matched[start:end], func(a models.Alarm, _ int) models.AlarmSummary { return summarize(a) }),
		Total: total,
	}
}

// Get returns the full alarm. A leading '#' on id is ignored.
func (s *AlarmStore) Get(id string) (models.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[strings.TrimPrefix(id, "#")]
	if !ok {
		return models.Alarm{}, ErrAlarmNotFound
	}
	return cloneAlarm(s.alarms[idx]), nil
}

// Resolve marks a pending alarm done and appends a timeline entry. An alarm
// already done is returned unchanged.
func (s *AlarmStore) Resolve(id string, entry models.TimelineEntry) (models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[strings.TrimPrefix(id, "#")]
	if !ok {
		return models.Alarm{}, ErrAlarmNotFound
	}

	a := &s.alarms[idx]
	if a.Status != models.AlarmDone {
		if n := len(a.Timeline); n > 0 && entry.At < a.Timeline[n-1].At {
			entry.At = a.Timeline[n-1].At
		}
		a.Status = models.AlarmDone
		a.Timeline = append(a.Timeline, entry)
	}
	return cloneAlarm(*a), nil
}

// Random returns the alarm at pick(len). pick must return a value in [0, n).
func (s *AlarmStore) Random(pick func(n int) int) (models.Alarm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.alarms) == 0 {
		return models.Alarm{}, false
	}
	return cloneAlarm(s.alarms[pick(len(s.alarms))]), true
}

// Len returns the number of alarms
func (s *AlarmStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.alarms)
}

func summarize(a models.Alarm) models.AlarmSummary {
	return models.AlarmSummary{
		ID:       "#" + a.ID,
		Thumb:    a.Thumb,
		Time:     a.Time,
		Target:   a.Target,
		Severity: a.Severity,
		Status:   a.Status,
	}
}

func datePart(t string) string {
	if len(t) < 10 {
		return t
	}
	return t[:10]
}

func cloneAlarm(a models.Alarm) models.Alarm {
	a.Snapshots = append([]string{}, a.Snapshots...)
	a.Timeline = append([]models.TimelineEntry{}, a.Timeline...)
	return a
}
