package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// isolate points user config and cache lookups at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	for _, env := range []string{"TADA_DATA_DIR", "TADA_STORAGE_KEY", "TADA_THEME", "TADA_LOG_FILE", "TADA_LOG_LEVEL"} {
		t.Setenv(env, "")
	}
	return home
}

func TestDefaults(t *testing.T) {
	home := isolate(t)
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wd, _ := os.Getwd()
	if cfg.DataDir != wd {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, wd)
	}
	if cfg.StorageKey != "todos" || cfg.Theme != "classic" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if want := filepath.Join(home, ".cache", "tada", "tada.log"); cfg.LogFile != want {
		t.Errorf("LogFile: got %q, want %q", cfg.LogFile, want)
	}
	if got := cfg.SlotPath(); got != filepath.Join(wd, "todos.json") {
		t.Errorf("SlotPath: got %q", got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("toml", func(t *testing.T) {
		cfg := &Config{}
		setDefaults(cfg)
		p := writeFile(t, filepath.Join(dir, "c.toml"), "storage_key = \"work\"\ntheme = \"neon\"\n")
		if err := loadConfigFile(cfg, p); err != nil {
			t.Fatalf("loadConfigFile: %v", err)
		}
		if cfg.StorageKey != "work" || cfg.Theme != "neon" || cfg.LogLevel != "info" {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := &Config{}
		setDefaults(cfg)
		p := writeFile(t, filepath.Join(dir, "c.yaml"), "data_dir: /tmp/tasks\nlog_level: debug\n")
		if err := loadConfigFile(cfg, p); err != nil {
			t.Fatalf("loadConfigFile: %v", err)
		}
		if cfg.DataDir != "/tmp/tasks" || cfg.LogLevel != "debug" || cfg.StorageKey != "todos" {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("unknown toml key", func(t *testing.T) {
		cfg := &Config{}
		p := writeFile(t, filepath.Join(dir, "bad.toml"), "colour = \"red\"\n")
		if err := loadConfigFile(cfg, p); err == nil || !strings.Contains(err.Error(), "unknown keys") {
			t.Errorf("expected unknown keys error, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		cfg := &Config{}
		p := writeFile(t, filepath.Join(dir, "c.json"), "{}")
		if err := loadConfigFile(cfg, p); err == nil {
			t.Error("expected error for .json config")
		}
	})
}

func TestLoadFromEnv(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	env := map[string]string{
		"TADA_STORAGE_KEY": "env-key",
		"TADA_THEME":       "",
	}
	loadFromEnv(cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if cfg.StorageKey != "env-key" {
		t.Errorf("StorageKey: got %q", cfg.StorageKey)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("empty env value should not override: got %q", cfg.Theme)
	}
}

func TestPriority(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "tada.toml"),
		"storage_key = \"from-file\"\ntheme = \"neon\"\nlog_level = \"warn\"\n")
	t.Setenv("TADA_THEME", "mono")
	t.Setenv("TADA_LOG_LEVEL", "error")

	fs := pflag.NewFlagSet("tada", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--config", file, "--log-level", "debug", "--data-dir", dir}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageKey != "from-file" {
		t.Errorf("StorageKey: got %q (file should win over default flag value)", cfg.StorageKey)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme: got %q (env should win over file)", cfg.Theme)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q (flag should win over env)", cfg.LogLevel)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
}

func TestFinalizeConfig(t *testing.T) {
	home := isolate(t)
	tests := []struct {
		name    string
		mutate  func(*Config)
		check   func(*testing.T, *Config)
		wantErr string
	}{
		{
			name:   "expands home",
			mutate: func(c *Config) { c.DataDir = "~/tasks"; c.LogFile = "~/tada.log" },
			check: func(t *testing.T, c *Config) {
				if c.DataDir != filepath.Join(home, "tasks") || c.LogFile != filepath.Join(home, "tada.log") {
					t.Errorf("got %+v", c)
				}
			},
		},
		{
			name:   "log off aliases",
			mutate: func(c *Config) { c.LogFile = "-" },
			check: func(t *testing.T, c *Config) {
				if c.LogFile != LogOff {
					t.Errorf("LogFile: got %q", c.LogFile)
				}
			},
		},
		{
			name:   "normalizes case",
			mutate: func(c *Config) { c.Theme = " Neon "; c.LogLevel = "DEBUG" },
			check: func(t *testing.T, c *Config) {
				if c.Theme != "neon" || c.LogLevel != "debug" {
					t.Errorf("got %+v", c)
				}
			},
		},
		{name: "bad key", mutate: func(c *Config) { c.StorageKey = "../x" }, wantErr: "storage_key"},
		{name: "bad theme", mutate: func(c *Config) { c.Theme = "plaid" }, wantErr: "theme"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)
			err := finalizeConfig(cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected %s error, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("finalizeConfig: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}
