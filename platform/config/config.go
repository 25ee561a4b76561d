// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SessionStoreConfig provides settings for the widget session store.
type SessionStoreConfig interface {
	GetRedisURL() string
	GetSessionTTL() time.Duration
	IsRedisEnabled() bool
}

// WidgetConfig provides per-instance defaults for new widgets.
type WidgetConfig interface {
	GetPreferredCountries() []string
	GetApplyMask() bool
	GetDebounceOnBlur() bool
	GetDefaultPlaceholder() string
	GetTabIndex() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env            string
	HTTPAddr       string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	RedisURL   string
	SessionTTL time.Duration

	PreferredCountries []string
	ApplyMask          bool
	DebounceOnBlur     bool
	DefaultPlaceholder string
	TabIndex           int

	WidgetDefaultsFile string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SessionStoreConfig implementation
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }
func (c *Config) IsRedisEnabled() bool         { return c.RedisURL != "" }

// WidgetConfig implementation
func (c *Config) GetPreferredCountries() []string { return c.PreferredCountries }
func (c *Config) GetApplyMask() bool              { return c.ApplyMask }
func (c *Config) GetDebounceOnBlur() bool         { return c.DebounceOnBlur }
func (c *Config) GetDefaultPlaceholder() string   { return c.DefaultPlaceholder }
func (c *Config) GetTabIndex() int                { return c.TabIndex }

// widgetDefaults mirrors the optional YAML defaults file. Pointer fields
// distinguish "absent" from zero values so the file only overrides what it sets.
type widgetDefaults struct {
	PreferredCountries []string `yaml:"preferredCountries"`
	ApplyMask          *bool    `yaml:"applyMask"`
	DebounceOnBlur     *bool    `yaml:"debounceOnBlur"`
	Placeholder        *string  `yaml:"placeholder"`
	TabIndex           *int     `yaml:"tabIndex"`
}

// Load reads configuration from environment variables and, when configured,
// overlays widget defaults from a YAML file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:           getEnv("REDIS_URL", ""),
		SessionTTL:         mustDuration(getEnv("WIDGET_SESSION_TTL", "24h")),
		PreferredCountries: splitCSV(getEnv("WIDGET_PREFERRED_COUNTRIES", "US,GB")),
		ApplyMask:          strings.EqualFold(getEnv("WIDGET_APPLY_MASK", "true"), "true"),
		DebounceOnBlur:     strings.EqualFold(getEnv("WIDGET_DEBOUNCE_ON_BLUR", "false"), "true"),
		DefaultPlaceholder: getEnv("WIDGET_PLACEHOLDER", ""),
		TabIndex:           mustInt(getEnv("WIDGET_TAB_INDEX", "0")),
		WidgetDefaultsFile: getEnv("WIDGET_DEFAULTS_FILE", ""),
	}

	if cfg.WidgetDefaultsFile != "" {
		if err := cfg.applyWidgetDefaultsFile(cfg.WidgetDefaultsFile); err != nil {
			return nil, fmt.Errorf("widget defaults file %q: %w", cfg.WidgetDefaultsFile, err)
		}
	}

	return cfg, nil
}

func (c *Config) applyWidgetDefaultsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var d widgetDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return err
	}

	if len(d.PreferredCountries) > 0 {
		c.PreferredCountries = d.PreferredCountries
	}
	if d.ApplyMask != nil {
		c.ApplyMask = *d.ApplyMask
	}
	if d.DebounceOnBlur != nil {
		c.DebounceOnBlur = *d.DebounceOnBlur
	}
	if d.Placeholder != nil {
		c.DefaultPlaceholder = *d.Placeholder
	}
	if d.TabIndex != nil {
		c.TabIndex = *d.TabIndex
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
