package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jonwraymond/siteicon/observe"
	"github.com/jonwraymond/siteicon/resilience"
	"github.com/jonwraymond/siteicon/store"
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWatermarks is returned when the low watermark is not
	// below the high watermark.
	ErrInvalidWatermarks = errors.New("config: low watermark must be below high watermark")

	// ErrInvalidTTL is returned when a TTL is not positive or the letter
	// horizons are inverted.
	ErrInvalidTTL = errors.New("config: invalid TTL")

	// ErrInvalidFetchRate is returned when the outbound fetch rate is
	// negative.
	ErrInvalidFetchRate = errors.New("config: fetch rate must not be negative")
)

// Config is the process configuration, parsed from SITEICON_* environment
// variables.
type Config struct {
	// StorePath is the SQLite database path. Empty selects the
	// in-memory store.
	StorePath string `env:"SITEICON_STORE_PATH"`

	// SourcesFile optionally replaces the built-in cascade.
	SourcesFile string `env:"SITEICON_SOURCES_FILE"`

	// HighWatermark triggers eviction; LowWatermark is where eviction
	// stops. Zero LowWatermark derives 3/4 of HighWatermark.
	HighWatermark int64 `env:"SITEICON_HIGH_WATERMARK" envDefault:"8388608"`
	LowWatermark  int64 `env:"SITEICON_LOW_WATERMARK"`

	// Per-kind TTLs.
	ImageTTL       time.Duration `env:"SITEICON_IMAGE_TTL" envDefault:"168h"`
	ExternalURLTTL time.Duration `env:"SITEICON_EXTERNAL_URL_TTL" envDefault:"168h"`
	LetterSoftTTL  time.Duration `env:"SITEICON_LETTER_SOFT_TTL" envDefault:"24h"`
	LetterHardTTL  time.Duration `env:"SITEICON_LETTER_HARD_TTL" envDefault:"336h"`

	// SweepInterval is the janitor cadence.
	SweepInterval time.Duration `env:"SITEICON_SWEEP_INTERVAL" envDefault:"1h"`

	// MaxConcurrentUpgrades caps background upgrade goroutines.
	MaxConcurrentUpgrades int `env:"SITEICON_MAX_UPGRADES" envDefault:"4"`

	// FetchRPS caps outbound icon fetches per second across all
	// providers, keeping bulk resolutions polite to icon hosts. Zero
	// disables the limit.
	FetchRPS   float64 `env:"SITEICON_FETCH_RPS"`
	FetchBurst int     `env:"SITEICON_FETCH_BURST" envDefault:"5"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `env:"SITEICON_LOG_LEVEL" envDefault:"info"`

	// Telemetry exporters; empty disables the signal.
	TracingExporter string  `env:"SITEICON_TRACING_EXPORTER"`
	MetricsExporter string  `env:"SITEICON_METRICS_EXPORTER"`
	SamplePct       float64 `env:"SITEICON_TRACE_SAMPLE_PCT" envDefault:"1.0"`
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants the env parser cannot express.
func (c Config) Validate() error {
	if c.LowWatermark != 0 && c.LowWatermark >= c.HighWatermark {
		return ErrInvalidWatermarks
	}
	for _, ttl := range []time.Duration{c.ImageTTL, c.ExternalURLTTL, c.LetterSoftTTL, c.LetterHardTTL} {
		if ttl <= 0 {
			return fmt.Errorf("%w: TTLs must be positive", ErrInvalidTTL)
		}
	}
	if c.LetterSoftTTL >= c.LetterHardTTL {
		return fmt.Errorf("%w: letter soft TTL must be below the hard TTL", ErrInvalidTTL)
	}
	if c.FetchRPS < 0 {
		return ErrInvalidFetchRate
	}
	return nil
}

// RateLimiter builds the outbound fetch limiter, or nil when unlimited.
func (c Config) RateLimiter() *resilience.RateLimiter {
	if c.FetchRPS <= 0 {
		return nil
	}
	return resilience.NewRateLimiter(resilience.RateLimiterConfig{
		Rate:  c.FetchRPS,
		Burst: c.FetchBurst,
	})
}

// TTLPolicy converts the configured TTLs.
func (c Config) TTLPolicy() store.TTLPolicy {
	return store.TTLPolicy{
		ImageTTL:       c.ImageTTL,
		ExternalURLTTL: c.ExternalURLTTL,
		LetterSoftTTL:  c.LetterSoftTTL,
		LetterHardTTL:  c.LetterHardTTL,
	}
}

// JanitorConfig converts the configured watermarks.
func (c Config) JanitorConfig() store.JanitorConfig {
	return store.JanitorConfig{
		Policy:        c.TTLPolicy(),
		HighWatermark: c.HighWatermark,
		LowWatermark:  c.LowWatermark,
	}
}

// ObserveConfig builds the telemetry configuration.
func (c Config) ObserveConfig() observe.Config {
	return observe.Config{
		ServiceName: "siteicon",
		Tracing: observe.TracingConfig{
			Enabled:   c.TracingExporter != "",
			Exporter:  c.TracingExporter,
			SamplePct: c.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.MetricsExporter != "",
			Exporter: c.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.LogLevel,
		},
	}
}
