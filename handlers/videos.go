package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tfortune6/perimeter-security/envelope"
	"github.com/tfortune6/perimeter-security/seed"
)

var allowedVideoExt = map[string]bool{".mp4": true, ".avi": true, ".mkv": true}

// GetVideos handles GET /api/videos
func (h *Handler) GetVideos(c *gin.Context) {
	ok(c, h.db.Videos.List(c.Query("keyword")))
}

// GetDemoVideo handles GET /api/videos/demo. Data is null when no video exists.
func (h *Handler) GetDemoVideo(c *gin.Context) {
	demo, found := h.db.Videos.Demo()
	if !found {
		ok(c, nil)
		return
	}
	ok(c, demo)
}

// UploadVideo handles POST /api/videos/upload. The multipart "file" field
// is optional; only its name and size are kept.
func (h *Handler) UploadVideo(c *gin.Context) {
	var upload seed.Upload
	if fh, err := c.FormFile("file"); err == nil {
		name := filepath.Base(fh.Filename)
		if !allowedVideoExt[strings.ToLower(filepath.Ext(name))] {
			fail(c, envelope.CodeValidation, msgUnsupportedExt)
			return
		}
		upload = seed.Upload{FileName: name, Bytes: fh.Size}
	}

	row := h.db.UploadVideo(seed.UploadedVideo(h.rand, upload, h.now()), func() string {
		return seed.HexID(h.rand, "vid-")
	})
	h.log.Info().Str("video_id", row.ID).Str("name", row.Name).Msg("video uploaded")
	ok(c, row)
}

// SetDemoVideo handles POST /api/videos/:id/set-demo
func (h *Handler) SetDemoVideo(c *gin.Context) {
	row, err := h.db.Videos.SetDemo(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	ok(c, row)
}

// DeleteVideo handles DELETE /api/videos/:id
func (h *Handler) DeleteVideo(c *gin.Context) {
	if err := h.db.DeleteVideo(c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	h.log.Info().Str("video_id", c.Param("id")).Msg("video deleted")
	ok(c, true)
}
