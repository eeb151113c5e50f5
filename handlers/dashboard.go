package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tfortune6/perimeter-security/models"
	"github.com/tfortune6/perimeter-security/seed"
	"github.com/tfortune6/perimeter-security/services"
)

// GetDashboardEvents handles GET /api/dashboard/events
func (h *Handler) GetDashboardEvents(c *gin.Context) {
	limit := services.ParseLimit(c.Query("limit"))
	ok(c, h.feed.Generate(limit, h.db.CurrentSourceID()))
}

// GetDashboardOverlays handles GET /api/dashboard/overlays
func (h *Handler) GetDashboardOverlays(c *gin.Context) {
	ok(c, h.db.Overlays.Get(h.sourceParam(c)))
}

// SaveConfig handles POST /api/config/save
func (h *Handler) SaveConfig(c *gin.Context) {
	sourceID := h.sourceParam(c)
	ok(c, models.ConfigSaveResult{
		SourceID:  sourceID,
		SavedAt:   seed.FormatISO(h.now()),
		ZoneCount: h.db.Zones.Count(sourceID),
	})
}
