package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tfortune6/perimeter-security/models"
	"github.com/tfortune6/perimeter-security/seed"
	"github.com/tfortune6/perimeter-security/store"
)

// GetAlarms handles GET /api/alarms
func (h *Handler) GetAlarms(c *gin.Context) {
	q := store.AlarmQuery{
		Query:     c.Query("query"),
		Level:     c.Query("level"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Page:      queryInt(c, "page", store.DefaultPage),
		PageSize:  queryIntPtr(c, "pageSize"),
	}
	ok(c, h.db.Alarms.Query(q))
}

// GetAlarm handles GET /api/alarms/:id
func (h *Handler) GetAlarm(c *gin.Context) {
	alarm, err := h.db.Alarms.Get(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	ok(c, alarm)
}

// ResolveAlarm handles PATCH /api/alarms/:id/resolve
func (h *Handler) ResolveAlarm(c *gin.Context) {
	alarm, err := h.db.Alarms.Resolve(c.Param("id"), models.TimelineEntry{
		At:     seed.FormatISO(h.now()),
		Action: "Resolved",
		By:     h.db.User().Name,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	h.log.Info().Str("alarm_id", alarm.ID).Msg("alarm resolved")
	ok(c, alarm)
}

func queryInt(c *gin.Context, key string, def int) int {
	if n := queryIntPtr(c, key); n != nil {
		return *n
	}
	return def
}

// queryIntPtr returns nil when key is absent or not an integer
func queryIntPtr(c *gin.Context, key string) *int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return nil
	}
	return &n
}
