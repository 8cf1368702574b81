package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override file settings.
// Nested keys use a double underscore: SAVERINO_CATALOG__BASE_URL.
const EnvPrefix = "SAVERINO_"

// Defaults applied by the Get*Config helpers.
const (
	DefaultBaseURL  = "https://jiosaavn-api-privatecvc2.vercel.app"
	DefaultPageSize = 40
	DefaultTimeout  = 12 * time.Second
	DefaultQuality  = "3"
	DefaultLogLevel = "info"
)

type Config struct {
	// Music catalog API
	Catalog CatalogConfig `koanf:"catalog"`

	// Playback defaults
	Playback PlaybackConfig `koanf:"playback"`

	// Persistent store location
	State StateConfig `koanf:"state"`

	Log LogConfig `koanf:"log"`

	// Desktop notifications on track change (default: true)
	Notifications ToggleConfig `koanf:"notifications"`

	// MPRIS media controls (default: true)
	MPRIS ToggleConfig `koanf:"mpris"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`
}

// CatalogConfig holds the catalog API settings.
type CatalogConfig struct {
	BaseURL  string        `koanf:"base_url"`
	PageSize int           `koanf:"page_size"` // results per search page (1-100, default: 40)
	Timeout  time.Duration `koanf:"timeout"`   // e.g. "12s"
}

// PlaybackConfig holds playback settings.
type PlaybackConfig struct {
	Quality string `koanf:"quality"` // tier "1".."5", used until the user picks one
}

// StateConfig holds the persistent store settings.
type StateConfig struct {
	DBPath string `koanf:"db_path"` // empty means the XDG data dir
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
	File  string `koanf:"file"`  // empty means the XDG state dir
}

// ToggleConfig is a section with a single enabled flag.
type ToggleConfig struct {
	Enabled *bool `koanf:"enabled"`
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// Load reads the config files then the SAVERINO_* environment.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Catalog.BaseURL = strings.TrimSuffix(cfg.Catalog.BaseURL, "/")
	cfg.State.DBPath = expandPath(cfg.State.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

// envKey maps SAVERINO_CATALOG__BASE_URL to catalog.base_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/saverino/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "saverino", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority among files)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != "" && c.Lastfm.SessionKey != ""
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications.Enabled == nil || *c.Notifications.Enabled
}

// MPRISEnabled reports whether the MPRIS server should run.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}

// GetCatalogConfig returns the catalog configuration with defaults applied.
func (c *Config) GetCatalogConfig() CatalogConfig {
	cfg := c.Catalog

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 100 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return cfg
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
// Unknown tiers fall back to the default rather than failing startup.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	switch cfg.Quality {
	case "0", "1", "2", "3", "4":
	default:
		cfg.Quality = DefaultQuality
	}

	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = DefaultLogLevel
	}

	return cfg
}
