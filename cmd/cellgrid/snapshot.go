package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cellgrid/internal/demo"
	"github.com/ShayCichocki/cellgrid/internal/host"
)

var (
	snapshotOutput string
	snapshotFormat string
	snapshotSize   string
	snapshotKeys   string
	snapshotWatch  string
	snapshotRecord bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [demo]",
	Short: "Render a demo headlessly",
	Long: `Render a demo at a fixed size without a terminal and print the last
frame, optionally after feeding it a script of keys.

Formats:
  text  the grid as plain rows (default)
  html  the grid escaped inside a <pre> block
  yaml  size plus one string per row

With --output the snapshot is written to a file. An existing non-empty file
is never overwritten.

Example:
  cellgrid snapshot form --size 40x8 --keys "a,d,a,tab,x" --format html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "Write the snapshot to this file instead of stdout")
	snapshotCmd.Flags().StringVar(&snapshotFormat, "format", "text", "Output format: text, html or yaml")
	snapshotCmd.Flags().StringVar(&snapshotSize, "size", "", "Grid size as WIDTHxHEIGHT (default from config)")
	snapshotCmd.Flags().StringVar(&snapshotKeys, "keys", "", "Comma-separated keys to feed before the snapshot")
	snapshotCmd.Flags().StringVar(&snapshotWatch, "watch", "", "File shown by the file demo")
	snapshotCmd.Flags().BoolVar(&snapshotRecord, "record", false, "Record every presented frame to SQLite")
}

// parseSize parses WIDTHxHEIGHT.
func parseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: both dimensions must be positive", s)
	}
	return width, height, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if snapshotRecord {
		cfg.Record.Enabled = true
	}

	closeLog, err := setupDebugLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := cfg.Snapshot.Width, cfg.Snapshot.Height
	if snapshotSize != "" {
		if width, height, err = parseSize(snapshotSize); err != nil {
			return err
		}
	}
	format, err := host.ParseFormat(snapshotFormat)
	if err != nil {
		return err
	}
	keys, err := host.ParseKeys(snapshotKeys)
	if err != nil {
		return err
	}

	d, err := demo.Lookup(demoName(args))
	if err != nil {
		return err
	}
	app, err := d.Build(demo.Env{Path: snapshotWatch})
	if err != nil {
		return fmt.Errorf("build %s demo: %w", d.Name, err)
	}
	defer app.Close()

	snap, err := host.NewSnapshot(width, height, format, snapshotOutput)
	if err != nil {
		return err
	}

	rec, err := startRecording(cfg, d.Name)
	if err != nil {
		return fmt.Errorf("start recording: %w", err)
	}
	defer rec.finish()

	km := host.NewKeyMap(cfg.Keys.Quit, cfg.Keys.FocusNext, cfg.Keys.FocusPrev)
	if _, err := host.Capture(snap, app.Root, km, keys, rec.options()...); err != nil {
		return fmt.Errorf("render %s demo: %w", d.Name, err)
	}

	if snapshotOutput == "" {
		out, err := snap.Render()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if err := snap.Save(); err != nil {
		return err
	}
	printStatus("✓", fmt.Sprintf("Wrote %dx%d %s snapshot to %s", width, height, format, snapshotOutput), color.FgGreen)
	return nil
}
