// Package config loads the server configuration from an optional TOML file
// and ASSESSORIA_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/goliatone/go-assessoria/pkg/contact"
)

// Environment variables read by Load.
const (
	EnvAddr         = "ASSESSORIA_ADDR"
	EnvLogLevel     = "ASSESSORIA_LOG_LEVEL"
	EnvLogFormat    = "ASSESSORIA_LOG_FORMAT"
	EnvMetrics      = "ASSESSORIA_METRICS"
	EnvSubmitDelay  = "ASSESSORIA_SUBMIT_DELAY"
	EnvFeedbackTTL  = "ASSESSORIA_FEEDBACK_TTL"
	EnvThemeVariant = "ASSESSORIA_THEME_VARIANT"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the resolved runtime configuration.
type Config struct {
	Addr         string
	LogLevel     string
	LogFormat    string
	Metrics      bool
	SubmitDelay  time.Duration
	FeedbackTTL  time.Duration
	ThemeVariant string
	TemplatesDir string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:         ":8080",
		LogLevel:     "info",
		LogFormat:    FormatConsole,
		Metrics:      true,
		SubmitDelay:  contact.DefaultSubmitDelay,
		FeedbackTTL:  contact.DefaultFeedbackTTL,
		ThemeVariant: "default",
	}
}

// Timing returns the contact controller delays.
func (c Config) Timing() contact.Timing {
	return contact.Timing{SubmitDelay: c.SubmitDelay, FeedbackTTL: c.FeedbackTTL}
}

type fileConfig struct {
	Addr         string `toml:"addr"`
	LogLevel     string `toml:"log_level"`
	LogFormat    string `toml:"log_format"`
	Metrics      bool   `toml:"metrics"`
	SubmitDelay  string `toml:"submit_delay"`
	FeedbackTTL  string `toml:"feedback_ttl"`
	ThemeVariant string `toml:"theme_variant"`
	TemplatesDir string `toml:"templates_dir"`
}

// Load resolves the configuration: defaults, then the TOML file at path when
// path is not empty, then environment overrides read through getenv. A nil
// getenv reads the process environment.
func Load(path string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.TrimSpace(raw.LogFormat)
	}
	if meta.IsDefined("metrics") {
		cfg.Metrics = raw.Metrics
	}
	if meta.IsDefined("submit_delay") {
		d, err := parseDuration("submit_delay", raw.SubmitDelay)
		if err != nil {
			return err
		}
		cfg.SubmitDelay = d
	}
	if meta.IsDefined("feedback_ttl") {
		d, err := parseDuration("feedback_ttl", raw.FeedbackTTL)
		if err != nil {
			return err
		}
		cfg.FeedbackTTL = d
	}
	if meta.IsDefined("theme_variant") {
		cfg.ThemeVariant = strings.TrimSpace(raw.ThemeVariant)
	}
	if meta.IsDefined("templates_dir") {
		cfg.TemplatesDir = strings.TrimSpace(raw.TemplatesDir)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(getenv(EnvMetrics)); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalid, EnvMetrics, v)
		}
		cfg.Metrics = on
	}
	if v := getenv(EnvSubmitDelay); strings.TrimSpace(v) != "" {
		d, err := parseDuration(EnvSubmitDelay, v)
		if err != nil {
			return err
		}
		cfg.SubmitDelay = d
	}
	if v := getenv(EnvFeedbackTTL); strings.TrimSpace(v) != "" {
		d, err := parseDuration(EnvFeedbackTTL, v)
		if err != nil {
			return err
		}
		cfg.FeedbackTTL = d
	}
	if v := strings.TrimSpace(getenv(EnvThemeVariant)); v != "" {
		cfg.ThemeVariant = v
	}
	return nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %v", ErrInvalid, key, err)
	}
	return d, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalid)
	}
	switch strings.ToLower(c.LogFormat) {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q (want %s or %s)", ErrInvalid, c.LogFormat, FormatConsole, FormatJSON)
	}
	if c.SubmitDelay < 0 {
		return fmt.Errorf("%w: submit delay must not be negative", ErrInvalid)
	}
	if c.FeedbackTTL <= 0 {
		return fmt.Errorf("%w: feedback ttl must be positive", ErrInvalid)
	}
	if c.ThemeVariant == "" {
		return fmt.Errorf("%w: theme variant is required", ErrInvalid)
	}
	return nil
}
