// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when parsed values are out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds every setting the tickfsm binary reads at startup.
type Config struct {
	// Seed for the dungeon and AI random source. 0 picks a time-based seed.
	Seed int64 `env:"TICKFSM_SEED" envDefault:"0"`

	// FrameRate is how many Update/LateUpdate ticks run per second.
	FrameRate int `env:"TICKFSM_FPS" envDefault:"30"`
	// FixedRate is how many FixedUpdate ticks run per second.
	FixedRate int `env:"TICKFSM_FIXED_HZ" envDefault:"4"`

	LogLevel  string `env:"TICKFSM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"TICKFSM_LOG_FORMAT" envDefault:"text"`
	// LogFile receives all logs; the terminal belongs to the renderer.
	LogFile string `env:"TICKFSM_LOG_FILE" envDefault:"tickfsm.log"`

	Telemetry        bool   `env:"TICKFSM_TELEMETRY" envDefault:"false"`
	OTLPEndpoint     string `env:"TICKFSM_OTLP_ENDPOINT" envDefault:"https://api.honeycomb.io"`
	HoneycombAPIKey  string `env:"HONEYCOMB_TICKFSM_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_TICKFSM_DATASET" envDefault:"tickfsm"`
}

// Load reads the given .env files (".env" when none are named), then parses
// the process environment into a Config. Missing .env files are not an
// error; variables already set in the environment win over file values.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c Config) Validate() error {
	if c.FrameRate <= 0 || c.FrameRate > 240 {
		return fmt.Errorf("%w: TICKFSM_FPS must be in 1..240, got %d", ErrInvalidConfig, c.FrameRate)
	}
	if c.FixedRate <= 0 || c.FixedRate > c.FrameRate {
		return fmt.Errorf("%w: TICKFSM_FIXED_HZ must be in 1..%d, got %d", ErrInvalidConfig, c.FrameRate, c.FixedRate)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: TICKFSM_LOG_FORMAT must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// FrameInterval is the period between Update ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// FixedInterval is the period between FixedUpdate ticks.
func (c Config) FixedInterval() time.Duration {
	return time.Second / time.Duration(c.FixedRate)
}

// OTLPHeaders builds the exporter headers for Honeycomb. Empty when no API
// key is configured.
func (c Config) OTLPHeaders() map[string]string {
	if c.HoneycombAPIKey == "" {
		return nil
	}
	return map[string]string{
		"x-honeycomb-team":    c.HoneycombAPIKey,
		"x-honeycomb-dataset": c.HoneycombDataset,
	}
}
