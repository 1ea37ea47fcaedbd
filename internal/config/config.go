// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the server.
type Config struct {
	// DatabaseURL selects the durable store. Empty means in-memory storage.
	DatabaseURL string `env:"DATABASE_URL"`

	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`

	// ContactRatePerMinute limits contact submissions per client IP. 0 disables it.
	ContactRatePerMinute int `env:"CONTACT_RATE_PER_MINUTE" envDefault:"10"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads an optional .env file and then parses the environment.
// Variables already set in the environment win over .env entries.
func Load(dotenvFiles ...string) (Config, error) {
	_ = godotenv.Load(dotenvFiles...)
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ContactRatePerMinute < 0 {
		return Config{}, fmt.Errorf("parse env: CONTACT_RATE_PER_MINUTE must not be negative, got %d", cfg.ContactRatePerMinute)
	}
	return cfg, nil
}
