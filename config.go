package gocarousel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the file LoadConfig looks for in the data directory.
const ConfigFileName = "carousel.toml"

// Store backends for the default style.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds the server and CLI settings.
type Config struct {
	ListenAddr     string   `toml:"listen_addr"`
	DataDir        string   `toml:"data_dir"`
	ProxyBase      string   `toml:"proxy_base,omitempty"`
	Width          int      `toml:"width"`
	Height         int      `toml:"height"`
	FontDirs       []string `toml:"font_dirs,omitempty"`
	StyleStore     string   `toml:"style_store"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8080",
		DataDir:        ".",
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		StyleStore:     StoreFile,
		RequestTimeout: Duration{30 * time.Second},
	}
}

// LoadConfig reads carousel.toml from dataDir. A missing file yields the
// defaults; empty fields in a present file are filled from them.
func LoadConfig(dataDir string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, ConfigFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			cfg.DataDir = dataDir
			return cfg, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}

	def := DefaultConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.StyleStore == "" {
		cfg.StyleStore = def.StyleStore
	}
	if cfg.RequestTimeout.Duration <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.StyleStore {
	case StoreFile, StoreSQLite:
		return nil
	}
	return fmt.Errorf("unknown style_store %q", c.StyleStore)
}

// SaveConfig writes cfg to carousel.toml in its data directory via a temp
// file and rename.
func SaveConfig(cfg Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.DataDir, ConfigFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// OpenStyleStore opens the configured style store under the data directory.
func (c Config) OpenStyleStore() (StyleStore, error) {
	switch c.StyleStore {
	case StoreSQLite:
		s, err := OpenSQLiteStyleStore(filepath.Join(c.DataDir, "styles.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	case StoreFile, "":
		return NewFileStyleStore(filepath.Join(c.DataDir, "styles")), nil
	}
	return nil, fmt.Errorf("unknown style_store %q", c.StyleStore)
}
