// Package config handles configuration loading and management for cellgrid.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for cellgrid.
type Config struct {
	TUI      TUIConfig      `mapstructure:"tui"`
	Keys     KeysConfig     `mapstructure:"keys"`
	Debug    DebugConfig    `mapstructure:"debug"`
	Record   RecordConfig   `mapstructure:"record"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// TUIConfig holds terminal host settings.
type TUIConfig struct {
	// FrameInterval is the delay before a scheduled tick runs.
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	Border        bool          `mapstructure:"border"`
	AltScreen     bool          `mapstructure:"alt_screen"`
}

// KeysConfig holds the keys the host handles instead of the tree.
type KeysConfig struct {
	FocusNext []string `mapstructure:"focus_next"`
	FocusPrev []string `mapstructure:"focus_prev"`
	Quit      []string `mapstructure:"quit"`
}

// DebugConfig controls the debug log.
type DebugConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	LogPath string `mapstructure:"log_path"`
}

// RecordConfig controls the SQLite frame recorder.
type RecordConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// SnapshotConfig holds the headless grid size.
type SnapshotConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

const envPrefix = "CELLGRID"

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (CELLGRID_TUI_BORDER, CELLGRID_DEBUG, ...)
// 2. Project config (.cellgrid.yaml in current directory or parent)
// 3. User config (~/.config/cellgrid/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := newViper()

	// Load user config from XDG path
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path. Environment
// variables still override the file.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// Environment variable overrides. Keys are bound one by one rather than
	// with AutomaticEnv: a set CELLGRID_DEBUG would otherwise shadow the
	// whole debug section.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range v.AllKeys() {
		if key == "debug.enabled" {
			continue
		}
		v.BindEnv(key)
	}
	// CELLGRID_DEBUG is the short form of CELLGRID_DEBUG_ENABLED
	v.BindEnv("debug.enabled", envPrefix+"_DEBUG_ENABLED", envPrefix+"_DEBUG")

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Debug.LogPath = expandEnv(cfg.Debug.LogPath)
	cfg.Record.DBPath = expandEnv(cfg.Record.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the host unusable.
func (c *Config) Validate() error {
	if c.TUI.FrameInterval < 0 {
		return fmt.Errorf("tui.frame_interval must not be negative, got %v", c.TUI.FrameInterval)
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", c.Snapshot.Width, c.Snapshot.Height)
	}
	if len(c.Keys.Quit) == 0 {
		return fmt.Errorf("keys.quit must bind at least one key")
	}
	return nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return SaveToPath(cfg, filepath.Join(userConfigDir, "config.yaml"))
}

// SaveToPath writes the configuration to path.
func SaveToPath(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	v.Set("tui.frame_interval", cfg.TUI.FrameInterval.String())
	v.Set("tui.border", cfg.TUI.Border)
	v.Set("tui.alt_screen", cfg.TUI.AltScreen)
	v.Set("keys.focus_next", cfg.Keys.FocusNext)
	v.Set("keys.focus_prev", cfg.Keys.FocusPrev)
	v.Set("keys.quit", cfg.Keys.Quit)
	v.Set("debug.enabled", cfg.Debug.Enabled)
	v.Set("debug.log_path", cfg.Debug.LogPath)
	v.Set("record.enabled", cfg.Record.Enabled)
	v.Set("record.db_path", cfg.Record.DBPath)
	v.Set("snapshot.width", cfg.Snapshot.Width)
	v.Set("snapshot.height", cfg.Snapshot.Height)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	// TUI defaults
	v.SetDefault("tui.frame_interval", d.TUI.FrameInterval.String())
	v.SetDefault("tui.border", d.TUI.Border)
	v.SetDefault("tui.alt_screen", d.TUI.AltScreen)

	// Key bindings
	v.SetDefault("keys.focus_next", d.Keys.FocusNext)
	v.SetDefault("keys.focus_prev", d.Keys.FocusPrev)
	v.SetDefault("keys.quit", d.Keys.Quit)

	// Debug log
	v.SetDefault("debug.enabled", d.Debug.Enabled)
	v.SetDefault("debug.log_path", d.Debug.LogPath)

	// Frame recorder
	v.SetDefault("record.enabled", d.Record.Enabled)
	v.SetDefault("record.db_path", d.Record.DBPath)

	// Snapshot size
	v.SetDefault("snapshot.width", d.Snapshot.Width)
	v.SetDefault("snapshot.height", d.Snapshot.Height)
}

// getUserConfigDir returns the XDG config directory for cellgrid.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cellgrid")
	}

	// Fall back to ~/.config/cellgrid
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "cellgrid")
	}
	return filepath.Join(home, ".config", "cellgrid")
}

// findProjectConfig searches for .cellgrid.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".cellgrid.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		TUI: TUIConfig{
			FrameInterval: 16 * time.Millisecond,
			Border:        true,
			AltScreen:     true,
		},
		Keys: KeysConfig{
			FocusNext: []string{"tab"},
			FocusPrev: []string{"shift+tab"},
			Quit:      []string{"ctrl+c"},
		},
		Snapshot: SnapshotConfig{
			Width:  80,
			Height: 24,
		},
	}
}
