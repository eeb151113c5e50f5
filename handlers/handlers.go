// Package handlers binds the mock REST surface to gin. Every protected
// route runs latency, then the auth guard, then the handler.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tfortune6/perimeter-security/auth"
	"github.com/tfortune6/perimeter-security/middleware"
	"github.com/tfortune6/perimeter-security/seed"
	"github.com/tfortune6/perimeter-security/services"
	"github.com/tfortune6/perimeter-security/store"
)

// Options configures a Handler. Zero values pick sensible defaults.
type Options struct {
	Rand         seed.Rand
	Now          func() time.Time
	Logger       *zerolog.Logger
	LatencyScale float64
}

// Handler serves the REST surface over one DB
type Handler struct {
	db           *store.DB
	guard        *auth.Guard
	feed         *services.LiveFeed
	rand         seed.Rand
	now          func() time.Time
	log          zerolog.Logger
	latencyScale float64
}

// New creates a Handler
func New(db *store.DB, guard *auth.Guard, opts Options) *Handler {
	if opts.Rand == nil {
		opts.Rand = seed.NewRand(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Handler{
		db:           db,
		guard:        guard,
		feed:         services.NewLiveFeed(db.Alarms, opts.Rand, opts.Now),
		rand:         opts.Rand,
		now:          opts.Now,
		log:          log,
		latencyScale: opts.LatencyScale,
	}
}

// Register mounts the health check and every /api route on r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": h.now().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		api.POST("/login", h.latency(300), h.Login)
		api.GET("/me", h.protected(200, h.GetMe)...)

		api.GET("/system/status", h.protected(150, h.GetSystemStatus)...)
		api.PUT("/system/status", h.protected(200, h.UpdateSystemStatus)...)
		api.GET("/sources", h.protected(150, h.GetSources)...)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/events", h.protected(250, h.GetDashboardEvents)...)
			dashboard.GET("/overlays", h.protected(200, h.GetDashboardOverlays)...)
		}

		zones := api.Group("/zones")
		{
			zones.GET("", h.protected(200, h.GetZones)...)
			zones.POST("", h.protected(250, h.CreateZone)...)
			zones.PUT("/:id", h.protected(250, h.UpdateZone)...)
			zones.DELETE("/:id", h.protected(250, h.DeleteZone)...)
		}

		api.POST("/config/save", h.protected(350, h.SaveConfig)...)

		alarms := api.Group("/alarms")
		{
			alarms.GET("", h.protected(350, h.GetAlarms)...)
			alarms.GET("/:id", h.protected(250, h.GetAlarm)...)
			alarms.PATCH("/:id/resolve", h.protected(250, h.ResolveAlarm)...)
		}

		videos := api.Group("/videos")
		{
			videos.GET("", h.protected(250, h.GetVideos)...)
			videos.GET("/demo", h.protected(180, h.GetDemoVideo)...)
			videos.POST("/upload", h.protected(450, h.UploadVideo)...)
			videos.POST("/:id/set-demo", h.protected(250, h.SetDemoVideo)...)
			videos.DELETE("/:id", h.protected(250, h.DeleteVideo)...)
		}
	}
}

func (h *Handler) latency(ms int) gin.HandlerFunc {
	return middleware.Latency(time.Duration(ms)*time.Millisecond, h.latencyScale)
}

func (h *Handler) protected(ms int, handler gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{h.latency(ms), h.RequireAuth(), handler}
}

// sourceParam returns the sourceId query value, defaulting to the current source
func (h *Handler) sourceParam(c *gin.Context) string {
	if id := c.Query("sourceId"); id != "" {
		return id
	}
	return h.db.CurrentSourceID()
}
