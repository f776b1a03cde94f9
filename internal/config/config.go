// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/store/kv"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Default values.
const (
	DefaultStorageKey = "todos"
	DefaultTheme      = "classic"
	DefaultLogLevel   = "info"
	// LogOff disables the log file.
	LogOff = "off"
)

// Config holds the full configuration for tada.
type Config struct {
	// DataDir holds the storage slots. Empty means the working directory.
	DataDir    string `toml:"data_dir" yaml:"data_dir"`
	StorageKey string `toml:"storage_key" yaml:"storage_key"`
	Theme      string `toml:"theme" yaml:"theme"`
	LogFile    string `toml:"log_file" yaml:"log_file"`
	LogLevel   string `toml:"log_level" yaml:"log_level"`
}

func setDefaults(cfg *Config) {
	cfg.DataDir = ""
	cfg.StorageKey = DefaultStorageKey
	cfg.Theme = DefaultTheme
	cfg.LogFile = defaultLogFile()
	cfg.LogLevel = DefaultLogLevel
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return LogOff
	}
	return filepath.Join(dir, "tada", "tada.log")
}

// finalizeConfig resolves paths and validates values.
func finalizeConfig(cfg *Config) error {
	if cfg.DataDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getwd: %w", err)
		}
		cfg.DataDir = wd
	}
	cfg.DataDir = expandHome(cfg.DataDir)

	cfg.StorageKey = strings.TrimSpace(cfg.StorageKey)
	if err := kv.ValidateKey(cfg.StorageKey); err != nil {
		return fmt.Errorf("storage_key: %w", err)
	}

	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if !ui.ValidTheme(cfg.Theme) {
		return fmt.Errorf("theme: unknown theme %q", cfg.Theme)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch strings.TrimSpace(cfg.LogFile) {
	case "", "-", LogOff:
		cfg.LogFile = LogOff
	default:
		cfg.LogFile = expandHome(cfg.LogFile)
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// SlotPath is the file the configured slot is stored in.
func (c *Config) SlotPath() string {
	return kv.NewFileStorage(c.DataDir).Path(c.StorageKey)
}
