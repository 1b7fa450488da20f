// Package config loads server and CLI configuration from a TOML file
// with environment-independent defaults. Every field has a working
// default so a zero-config start serves from memory with caching
// disabled.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// Config is the root configuration.
type Config struct {
	Grid     GridConfig     `toml:"grid"`
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
	Cache    CacheConfig    `toml:"cache"`
	Realtime RealtimeConfig `toml:"realtime"`
}

// GridConfig tunes the placement engine.
type GridConfig struct {
	// MaxScanRows bounds the free-slot search below existing content.
	MaxScanRows int `toml:"max_scan_rows"`

	// MainPanelPx and SecondaryPanelPx are the pixel widths subtracted
	// from the window when the corresponding side panel is open.
	MainPanelPx      int `toml:"main_panel_px"`
	SecondaryPanelPx int `toml:"secondary_panel_px"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects and configures the snapshot store backend.
type StoreConfig struct {
	// Backend is one of "memory", "file", or "mongo".
	Backend string `toml:"backend"`

	// Dir is the dashboard directory for the file backend.
	// Empty means the default under ~/.config/dashgrid/.
	Dir string `toml:"dir"`

	// MongoURI, MongoDatabase, and MongoCollection configure the mongo
	// backend.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig selects and configures the recovery cache backend.
type CacheConfig struct {
	// Backend is one of "none", "file", or "redis".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	// RedisAddr, RedisPassword, and RedisDB configure the redis backend.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// RealtimeConfig configures layout change broadcasting.
type RealtimeConfig struct {
	// Enabled turns on Redis pub/sub broadcasting.
	Enabled bool `toml:"enabled"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	ChannelPrefix string `toml:"channel_prefix"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Backend: "memory"},
		Cache:  CacheConfig{Backend: "none"},
	}
}

// Load reads a TOML config file and applies defaults for unset fields.
// An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend selections and their required fields.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "", "memory", "file":
	case "mongo":
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store backend mongo requires mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend: %s", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case "", "none", "file":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %s", c.Cache.Backend)
	}

	if c.Realtime.Enabled && c.Realtime.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "realtime requires redis_addr")
	}
	if c.Grid.MaxScanRows < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_scan_rows must not be negative")
	}
	return nil
}
