package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cellgrid/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify cellgrid configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.
Key lists (keys.*) take comma-separated values.

Configuration is stored at ~/.config/cellgrid/config.yaml
Project-specific overrides can be placed in .cellgrid.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
			return nil
		case 1:
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		default:
			return setConfigKey(cfg, args[0], args[1])
		}
	},
}

// configKeys lists every key in display order.
var configKeys = []string{
	"tui.frame_interval",
	"tui.border",
	"tui.alt_screen",
	"keys.focus_next",
	"keys.focus_prev",
	"keys.quit",
	"debug.enabled",
	"debug.log_path",
	"record.enabled",
	"record.db_path",
	"snapshot.width",
	"snapshot.height",
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	for _, key := range configKeys {
		value, _ := getConfigValue(cfg, key)
		fmt.Printf("%s: %s\n", key, value)
	}
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) error {
	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	save := config.Save
	if configPath != "" {
		save = func(c *config.Config) error { return config.SaveToPath(c, configPath) }
	}
	if err := save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Set %s = %s\n", key, value)
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "tui.frame_interval":
		return cfg.TUI.FrameInterval.String(), nil
	case "tui.border":
		return strconv.FormatBool(cfg.TUI.Border), nil
	case "tui.alt_screen":
		return strconv.FormatBool(cfg.TUI.AltScreen), nil
	case "keys.focus_next":
		return strings.Join(cfg.Keys.FocusNext, ","), nil
	case "keys.focus_prev":
		return strings.Join(cfg.Keys.FocusPrev, ","), nil
	case "keys.quit":
		return strings.Join(cfg.Keys.Quit, ","), nil
	case "debug.enabled":
		return strconv.FormatBool(cfg.Debug.Enabled), nil
	case "debug.log_path":
		return orNotSet(cfg.Debug.LogPath), nil
	case "record.enabled":
		return strconv.FormatBool(cfg.Record.Enabled), nil
	case "record.db_path":
		return orNotSet(cfg.Record.DBPath), nil
	case "snapshot.width":
		return strconv.Itoa(cfg.Snapshot.Width), nil
	case "snapshot.height":
		return strconv.Itoa(cfg.Snapshot.Height), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "tui.frame_interval":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for tui.frame_interval: %w", err)
		}
		cfg.TUI.FrameInterval = d
	case "tui.border":
		return setBool(&cfg.TUI.Border, key, value)
	case "tui.alt_screen":
		return setBool(&cfg.TUI.AltScreen, key, value)
	case "keys.focus_next":
		cfg.Keys.FocusNext = splitKeys(value)
	case "keys.focus_prev":
		cfg.Keys.FocusPrev = splitKeys(value)
	case "keys.quit":
		cfg.Keys.Quit = splitKeys(value)
	case "debug.enabled":
		return setBool(&cfg.Debug.Enabled, key, value)
	case "debug.log_path":
		cfg.Debug.LogPath = value
	case "record.enabled":
		return setBool(&cfg.Record.Enabled, key, value)
	case "record.db_path":
		cfg.Record.DBPath = value
	case "snapshot.width":
		return setInt(&cfg.Snapshot.Width, key, value)
	case "snapshot.height":
		return setInt(&cfg.Snapshot.Height, key, value)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitKeys(value string) []string {
	var keys []string
	for _, k := range strings.Split(value, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
