package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfortune6/perimeter-security/auth"
	"github.com/tfortune6/perimeter-security/envelope"
	"github.com/tfortune6/perimeter-security/handlers"
	"github.com/tfortune6/perimeter-security/models"
	"github.com/tfortune6/perimeter-security/seed"
	"github.com/tfortune6/perimeter-security/store"
	"golang.org/x/crypto/bcrypt"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := seed.NewRand(7)
	db := store.New(seed.Generate(r, seed.Config{Alarms: 40, Videos: 5, Location: time.UTC}), func() string {
		return seed.HexID(r, "zone-")
	})
	guard, err := auth.NewGuard("demo-token", "admin", "admin", bcrypt.MinCost)
	require.NoError(t, err)

	router := gin.New()
	handlers.New(db, guard, handlers.Options{Rand: r}).Register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func apiCode(err error) int {
	var apiErr *envelope.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return -1
}

func TestClientLogin(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()
	c := New(srv.URL)

	_, err := c.Me(ctx)
	assert.Equal(t, envelope.CodeUnauthorized, apiCode(err))

	_, err = c.Login(ctx, "admin", "wrong")
	assert.Equal(t, envelope.CodeLoginFailed, apiCode(err))
	assert.Empty(t, c.Token())

	token, err := c.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "demo-token", token)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u_admin", me.ID)
}

func TestClientWorkflow(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()
	c := New(srv.URL, WithToken("demo-token"))

	status, err := c.SystemStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vid-01", status.CurrentSourceID)

	sources, err := c.Sources(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 5)

	status, err = c.UpdateCurrentSource(ctx, "vid-02")
	require.NoError(t, err)
	assert.Equal(t, "vid-02", status.CurrentSourceID)

	_, err = c.UpdateCurrentSource(ctx, "vid-99")
	assert.Equal(t, envelope.CodeValidation, apiCode(err))

	events, err := c.DashboardEvents(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
	assert.Equal(t, "vid-02", events[0].SourceID)

	overlay, err := c.Overlays(ctx, "vid-01")
	require.NoError(t, err)
	assert.Len(t, overlay.Boxes, 3)
}

func TestClientZones(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()
	c := New(srv.URL, WithToken("demo-token"))

	name := "Loading bay"
	zone, err := c.CreateZone(ctx, "vid-03", models.ZonePatch{
		Name:          &name,
		PolygonPoints: []models.Point{{0, 0}, {4, 0}, {4, 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, name, zone.Name)

	_, err = c.CreateZone(ctx, "vid-03", models.ZonePatch{PolygonPoints: []models.Point{{0, 0}}})
	assert.Equal(t, envelope.CodeValidation, apiCode(err))

	threshold := 9
	updated, err := c.UpdateZone(ctx, zone.ID, models.ZonePatch{Threshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Threshold)
	assert.Equal(t, name, updated.Name)

	saved, err := c.SaveConfig(ctx, "vid-03")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.ZoneCount)

	require.NoError(t, c.DeleteZone(ctx, zone.ID))
	assert.Equal(t, envelope.CodeNotFound, apiCode(c.DeleteZone(ctx, zone.ID)))

	zones, err := c.Zones(ctx, "vid-03")
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestClientAlarms(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()
	c := New(srv.URL, WithToken("demo-token"))

	page, err := c.Alarms(ctx, AlarmFilter{Page: 2, PageSize: 15})
	require.NoError(t, err)
	assert.Equal(t, 40, page.Total)
	require.Len(t, page.List, 15)

	alarm, err := c.Alarm(ctx, page.List[0].ID)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimPrefix(page.List[0].ID, "#"), alarm.ID)

	resolved, err := c.ResolveAlarm(ctx, alarm.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlarmDone, resolved.Status)

	_, err = c.Alarm(ctx, "ALM-0000-0")
	assert.Equal(t, envelope.CodeNotFound, apiCode(err))
}

func TestClientVideos(t *testing.T) {
	srv := newBackend(t)
	ctx := context.Background()
	c := New(srv.URL, WithToken("demo-token"))

	uploaded, err := c.UploadVideo(ctx, "gate.avi", strings.NewReader("frames"))
	require.NoError(t, err)
	assert.Equal(t, "AVI", uploaded.Ext)
	assert.False(t, uploaded.IsDemo)

	_, err = c.UploadVideo(ctx, "gate.exe", strings.NewReader("x"))
	assert.Equal(t, envelope.CodeValidation, apiCode(err))

	videos, err := c.Videos(ctx, "gate")
	require.NoError(t, err)
	require.NotEmpty(t, videos)
	assert.Equal(t, uploaded.ID, videos[0].ID)

	_, err = c.SetDemo(ctx, uploaded.ID)
	require.NoError(t, err)
	demo, err := c.DemoVideo(ctx)
	require.NoError(t, err)
	require.NotNil(t, demo)
	assert.Equal(t, uploaded.ID, demo.ID)

	require.NoError(t, c.DeleteVideo(ctx, uploaded.ID))
	assert.Equal(t, envelope.CodeNotFound, apiCode(c.DeleteVideo(ctx, uploaded.ID)))
}
