package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cellgrid/internal/config"
	"github.com/ShayCichocki/cellgrid/internal/debuglog"
)

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "cellgrid",
	Short: "Text-grid component engine",
	Long: `cellgrid composes a tree of components into one character grid and
re-renders only the parts of the tree that changed.

Each component returns a fixed-size block of cells. Placeholders in a
parent's text mark where its children go; their shape tells the engine how
big each child is.

Run a demo in the terminal with 'cellgrid run', or render one headlessly
with 'cellgrid snapshot'.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config plus .cellgrid.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write a debug log")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(framesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads --config when given, the layered config otherwise.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// setupDebugLog installs the debug log when enabled. The returned func
// closes it.
func setupDebugLog(cfg *config.Config) (func(), error) {
	if !cfg.Debug.Enabled && !debugFlag {
		return func() {}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	l, err := debuglog.New(cfg.DebugLogPath(cwd))
	if err != nil {
		return nil, err
	}
	debuglog.SetDefault(l)
	return func() {
		debuglog.SetDefault(nil)
		l.Close()
	}, nil
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
