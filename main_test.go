package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfortune6/perimeter-security/config"
	"github.com/tfortune6/perimeter-security/middleware"
)

func testRouter(t *testing.T, origins ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Latency.Enabled = false
	cfg.Seed.Value = 11
	cfg.Server.CORSOrigins = origins

	router, err := newRouter(cfg, zerolog.Nop())
	require.NoError(t, err)
	return router
}

func TestRouterServesAPI(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"admin","password":"admin"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"ok","data":{"token":"demo-token"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouterCORS(t *testing.T) {
	t.Run("all origins", func(t *testing.T) {
		router := testRouter(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/me", nil)
		req.Header.Set("Origin", "http://console.local")
		req.Header.Set("Access-Control-Request-Method", "GET")
		req.Header.Set("Access-Control-Request-Headers", "Authorization")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin", func(t *testing.T) {
		router := testRouter(t, "http://console.local")
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://console.local")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "http://console.local", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
