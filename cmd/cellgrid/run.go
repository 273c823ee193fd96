package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cellgrid/internal/debuglog"
	"github.com/ShayCichocki/cellgrid/internal/demo"
	"github.com/ShayCichocki/cellgrid/internal/host"
)

var (
	runRecord        bool
	runWatch         string
	runNoBorder      bool
	runFrameInterval time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [demo]",
	Short: "Run a demo in the terminal",
	Long: `Run a demo component tree in the terminal.

Demos:
  form     three text inputs with tab focus cycling (default)
  counter  a counter driven by + and -
  split    side-by-side panes under a banner
  file     a file that redraws when it changes on disk (needs --watch)

Tab and shift+tab move focus, ctrl+c quits. Bindings can be changed under
keys.* in the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runRecord, "record", false, "Record every presented frame to SQLite")
	runCmd.Flags().StringVar(&runWatch, "watch", "", "File shown by the file demo")
	runCmd.Flags().BoolVar(&runNoBorder, "no-border", false, "Do not draw a border around the grid")
	runCmd.Flags().DurationVar(&runFrameInterval, "frame-interval", 0, "Delay before a scheduled frame (default from config)")
}

func demoName(args []string) string {
	if len(args) == 0 {
		return "form"
	}
	return args[0]
}

func runRun(cmd *cobra.Command, args []string) (retErr error) {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if runRecord {
		cfg.Record.Enabled = true
	}
	if runNoBorder {
		cfg.TUI.Border = false
	}
	if runFrameInterval > 0 {
		cfg.TUI.FrameInterval = runFrameInterval
	}

	closeLog, err := setupDebugLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	d, err := demo.Lookup(demoName(args))
	if err != nil {
		return err
	}
	app, err := d.Build(demo.Env{Path: runWatch})
	if err != nil {
		return fmt.Errorf("build %s demo: %w", d.Name, err)
	}
	defer app.Close()

	rec, err := startRecording(cfg, d.Name)
	if err != nil {
		return fmt.Errorf("start recording: %w", err)
	}
	defer rec.finish()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Suppress log output while the terminal is owned by the UI
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	// Recover from panics outside the engine's tick
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("panic in run: %v", r)
		}
	}()

	term := host.NewTerminal(ctx, app.Root, host.TerminalOptions{
		FrameInterval: cfg.TUI.FrameInterval,
		Border:        cfg.TUI.Border,
		AltScreen:     cfg.TUI.AltScreen,
		Keys:          host.NewKeyMap(cfg.Keys.Quit, cfg.Keys.FocusNext, cfg.Keys.FocusPrev),
		Engine:        rec.options(),
		Output:        os.Stdout,
	})
	if err := app.Start(term.Do); err != nil {
		return fmt.Errorf("start %s demo: %w", d.Name, err)
	}

	debuglog.Printf("run: demo %s", d.Name)
	if err := term.Run(); err != nil {
		return fmt.Errorf("%s demo: %w", d.Name, err)
	}
	return nil
}
