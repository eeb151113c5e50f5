package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the mock backend settings. Values come from defaults, then
// an optional YAML file, then the environment.
type Config struct {
	Server struct {
		Port        string   `yaml:"port" env:"PORT"`
		Env         string   `yaml:"env" env:"ENV"`
		CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	} `yaml:"server"`

	Session struct {
		Token    string `yaml:"token" env:"SESSION_TOKEN"`
		Username string `yaml:"username" env:"ADMIN_USERNAME"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	} `yaml:"session"`

	Latency struct {
		Enabled bool    `yaml:"enabled" env:"LATENCY_ENABLED"`
		Scale   float64 `yaml:"scale" env:"LATENCY_SCALE"`
	} `yaml:"latency"`

	Seed struct {
		Value  int64 `yaml:"value" env:"SEED"`
		Alarms int   `yaml:"alarms" env:"SEED_ALARMS"`
		Videos int   `yaml:"videos" env:"SEED_VIDEOS"`
	} `yaml:"seed"`

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"log"`
}

// Default returns the built-in settings
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "3001"
	cfg.Session.Token = "demo-token"
	cfg.Session.Username = "admin"
	cfg.Session.Password = "admin"
	cfg.Latency.Enabled = true
	cfg.Latency.Scale = 1
	cfg.Seed.Alarms = 128
	cfg.Seed.Videos = 30
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// Load reads path (if non-empty) over the defaults and applies environment
// overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Production reports whether gin should run in release mode
func (c *Config) Production() bool {
	return c.Server.Env == "production"
}

// LatencyScale returns the effective latency multiplier, 0 when disabled
func (c *Config) LatencyScale() float64 {
	if !c.Latency.Enabled || c.Latency.Scale < 0 {
		return 0
	}
	return c.Latency.Scale
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.Session.Token == "" {
		return fmt.Errorf("session token must not be empty")
	}
	return nil
}
