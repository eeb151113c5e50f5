package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/tfortune6/perimeter-security/envelope"
)

// StatusPatch is the PUT /api/system/status body. Only the current source
// can be changed.
type StatusPatch struct {
	CurrentSourceID string `json:"currentSourceId"`
}

// GetSystemStatus handles GET /api/system/status
func (h *Handler) GetSystemStatus(c *gin.Context) {
	ok(c, h.db.System.Get())
}

// UpdateSystemStatus handles PUT /api/system/status
func (h *Handler) UpdateSystemStatus(c *gin.Context) {
	var patch StatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		fail(c, envelope.CodeValidation, msgInvalidBody)
		return
	}

	if patch.CurrentSourceID == "" {
		ok(c, h.db.System.Get())
		return
	}

	status, err := h.db.SetCurrentSource(patch.CurrentSourceID)
	if err != nil {
		storeError(c, err)
		return
	}
	h.log.Info().Str("source_id", status.CurrentSourceID).Msg("current source changed")
	ok(c, status)
}

// GetSources handles GET /api/sources
func (h *Handler) GetSources(c *gin.Context) {
	ok(c, h.db.Videos.Sources())
}
