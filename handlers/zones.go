package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/tfortune6/perimeter-security/envelope"
	"github.com/tfortune6/perimeter-security/models"
	"github.com/tfortune6/perimeter-security/store"
)

// ZoneRequest is the body of POST /api/zones and PUT /api/zones/:id
type ZoneRequest struct {
	Name          *string        `json:"name"`
	Type          *string        `json:"type"`
	Threshold     *int           `json:"threshold"`
	Motion        *bool          `json:"motion"`
	PolygonPoints []models.Point `json:"polygonPoints"`
}

// CreateZoneRequest is ZoneRequest with a required polygon
type CreateZoneRequest struct {
	Name          *string        `json:"name"`
	Type          *string        `json:"type"`
	Threshold     *int           `json:"threshold"`
	Motion        *bool          `json:"motion"`
	PolygonPoints []models.Point `json:"polygonPoints" binding:"required,min=3"`
}

func (r ZoneRequest) patch() models.ZonePatch {
	return models.ZonePatch{
		Name:          r.Name,
		Type:          r.Type,
		Threshold:     r.Threshold,
		Motion:        r.Motion,
		PolygonPoints: r.PolygonPoints,
	}
}

// GetZones handles GET /api/zones
func (h *Handler) GetZones(c *gin.Context) {
	ok(c, h.db.Zones.List(h.sourceParam(c)))
}

// CreateZone handles POST /api/zones
func (h *Handler) CreateZone(c *gin.Context) {
	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) || isPolygonError(err) {
			fail(c, envelope.CodeValidation, store.ErrInvalidPolygon.Error())
			return
		}
		fail(c, envelope.CodeValidation, msgInvalidBody)
		return
	}

	sourceID := h.sourceParam(c)
	zone, err := h.db.Zones.Create(sourceID, ZoneRequest(req).patch())
	if err != nil {
		storeError(c, err)
		return
	}
	h.log.Info().Str("zone_id", zone.ID).Str("source_id", sourceID).Msg("zone created")
	ok(c, zone)
}

// UpdateZone handles PUT /api/zones/:id
func (h *Handler) UpdateZone(c *gin.Context) {
	var req ZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, envelope.CodeValidation, msgInvalidBody)
		return
	}

	zone, err := h.db.Zones.Update(c.Param("id"), req.patch())
	if err != nil {
		storeError(c, err)
		return
	}
	ok(c, zone)
}

// DeleteZone handles DELETE /api/zones/:id
func (h *Handler) DeleteZone(c *gin.Context) {
	if err := h.db.Zones.Delete(c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	ok(c, true)
}

func isPolygonError(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() == "PolygonPoints" {
			return true
		}
	}
	return false
}
