package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	MPD     MPDConfig     `koanf:"mpd"`
	Library LibraryConfig `koanf:"library"`
	Cache   CacheConfig   `koanf:"cache"`
	Picker  PickerConfig  `koanf:"picker"`
}

// MPDConfig holds the MPD connection settings. An empty host means
// "resolve from the MPD_HOST/MPD_PORT environment, then localhost:6600".
type MPDConfig struct {
	Host     string `koanf:"host"` // hostname, or absolute socket path
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
}

// LibraryConfig holds query settings.
type LibraryConfig struct {
	ArtistTag     string `koanf:"artist_tag"`      // "albumartist" or "artist"
	NewWindowDays int    `koanf:"new_window_days"` // lookback for the new-albums view
}

// CacheConfig holds the list-cache settings.
type CacheConfig struct {
	TTLMinutes int  `koanf:"ttl_minutes"`
	Disable    bool `koanf:"disable"` // same effect as --no-cache on every run
}

// PickerConfig holds the fuzzy-finder settings.
type PickerConfig struct {
	Command string   `koanf:"command"`
	Options []string `koanf:"options"` // extra args appended to the generated ones
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	// Expand ~ in a socket-path host
	if strings.HasPrefix(cfg.MPD.Host, "~") {
		cfg.MPD.Host = expandPath(cfg.MPD.Host)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.MPD.Port <= 0 {
		cfg.MPD.Port = 6600
	}
	if cfg.Library.ArtistTag == "" {
		cfg.Library.ArtistTag = "albumartist"
	}
	if cfg.Library.NewWindowDays <= 0 {
		cfg.Library.NewWindowDays = 90
	}
	if cfg.Cache.TTLMinutes <= 0 {
		cfg.Cache.TTLMinutes = 60
	}
	if cfg.Picker.Command == "" {
		cfg.Picker.Command = "fzf"
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/fzmp/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "fzmp", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
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
