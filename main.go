package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/tfortune6/perimeter-security/auth"
	"github.com/tfortune6/perimeter-security/config"
	"github.com/tfortune6/perimeter-security/handlers"
	"github.com/tfortune6/perimeter-security/logging"
	"github.com/tfortune6/perimeter-security/middleware"
	"github.com/tfortune6/perimeter-security/seed"
	"github.com/tfortune6/perimeter-security/store"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	seedValue := pflag.Int64("seed", 0, "random seed for the generated dataset (overrides SEED)")
	pflag.Parse()

	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log := logging.New(logging.Config{})
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	if pflag.CommandLine.Changed("seed") {
		cfg.Seed.Value = *seedValue
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if envErr != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	router, err := newRouter(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msgf("🚀 Server running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}

// newRouter seeds the store and assembles the gin engine
func newRouter(cfg *config.Config, log zerolog.Logger) (*gin.Engine, error) {
	rng := seed.NewRand(cfg.Seed.Value)
	dataset := seed.Generate(rng, seed.Config{Alarms: cfg.Seed.Alarms, Videos: cfg.Seed.Videos})
	db := store.New(dataset, func() string { return seed.HexID(rng, "zone-") })
	log.Info().
		Int("videos", db.Videos.Len()).
		Int("alarms", db.Alarms.Len()).
		Int64("seed", cfg.Seed.Value).
		Msg("🌱 Dataset generated")

	guard, err := auth.NewGuard(cfg.Session.Token, cfg.Session.Username, cfg.Session.Password, 0)
	if err != nil {
		return nil, err
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logging.AccessLog(log))
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	handlers.New(db, guard, handlers.Options{
		Rand:         rng,
		Logger:       &log,
		LatencyScale: cfg.LatencyScale(),
	}).Register(router)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cc := cors.DefaultConfig()
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	cc.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	cc.ExposeHeaders = []string{middleware.RequestIDHeader}
	return cc
}
