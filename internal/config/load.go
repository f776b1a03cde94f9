package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Flag names shared with the CLI.
const (
	FlagConfig   = "config"
	FlagDataDir  = "data-dir"
	FlagKey      = "key"
	FlagTheme    = "theme"
	FlagLogFile  = "log-file"
	FlagLogLevel = "log-level"
)

var configExts = []string{".toml", ".yaml", ".yml"}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "config file (toml or yaml)")
	fs.String(FlagDataDir, "", "directory holding the task list (default: working directory)")
	fs.String(FlagKey, DefaultStorageKey, "storage slot name")
	fs.String(FlagTheme, DefaultTheme, "theme: classic|neon|mono")
	fs.String(FlagLogFile, "", "log file path, or off")
	fs.String(FlagLogLevel, DefaultLogLevel, "log level: debug|info|warn|error")
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (<UserConfigDir>/tada/config.{toml,yaml,yml})
// 3. Project config file (.tada.{toml,yaml,yml} in the working directory)
// 4. File named by --config
// 5. Environment variables
// 6. CLI flags that were set
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}
	if fs != nil {
		if p, _ := fs.GetString(FlagConfig); p != "" {
			if err := loadConfigFile(cfg, p); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", p, err)
			}
		}
	}

	loadFromEnv(cfg, os.LookupEnv)
	applyFlags(cfg, fs)

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return firstExisting(filepath.Join(dir, "tada", "config"))
}

func findProjectConfigFile() string {
	return firstExisting(".tada")
}

func firstExisting(base string) string {
	for _, ext := range configExts {
		p := base + ext
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadConfigFile decodes a toml or yaml file over cfg. Keys absent from the
// file keep their current values.
func loadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
	case ".toml", "":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
	default:
		return errors.New("unsupported config format (want .toml, .yaml or .yml)")
	}
	return nil
}

// loadFromEnv applies TADA_* variables.
func loadFromEnv(cfg *Config, lookup func(string) (string, bool)) {
	for env, dst := range map[string]*string{
		"TADA_DATA_DIR":    &cfg.DataDir,
		"TADA_STORAGE_KEY": &cfg.StorageKey,
		"TADA_THEME":       &cfg.Theme,
		"TADA_LOG_FILE":    &cfg.LogFile,
		"TADA_LOG_LEVEL":   &cfg.LogLevel,
	} {
		if v, ok := lookup(env); ok && v != "" {
			*dst = v
		}
	}
}

// applyFlags copies flags the user actually set.
func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	if fs == nil {
		return
	}
	for name, dst := range map[string]*string{
		FlagDataDir:  &cfg.DataDir,
		FlagKey:      &cfg.StorageKey,
		FlagTheme:    &cfg.Theme,
		FlagLogFile:  &cfg.LogFile,
		FlagLogLevel: &cfg.LogLevel,
	} {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
}
