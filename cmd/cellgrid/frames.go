package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cellgrid/internal/state"
)

var (
	framesDB    string
	framesSeq   int
	framesPurge time.Duration
)

var framesCmd = &cobra.Command{
	Use:   "frames [session-id|latest]",
	Short: "Inspect recorded frames",
	Long: `List recorded sessions, or print the frames of one session.

Frames are recorded by 'cellgrid run --record' and 'cellgrid snapshot
--record'. Without arguments, lists sessions newest first. With a session ID
(or 'latest'), prints every frame of that session, or only --seq.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFrames,
}

func init() {
	framesCmd.Flags().StringVar(&framesDB, "db", "", "Frame database (default from config)")
	framesCmd.Flags().IntVar(&framesSeq, "seq", 0, "Print only the frame with this sequence number")
	framesCmd.Flags().DurationVar(&framesPurge, "purge", 0, "Delete sessions older than this duration")
}

func runFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath := framesDB
	if dbPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		dbPath = cfg.RecordDBPath(cwd)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No recorded frames. Run 'cellgrid run --record' to record some.")
		return nil
	}

	db, err := state.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if framesPurge > 0 {
		n, err := db.PurgeSessions(time.Now().Add(-framesPurge))
		if err != nil {
			return err
		}
		printStatus("✓", fmt.Sprintf("Purged %d sessions older than %s", n, framesPurge), color.FgGreen)
		return nil
	}

	if len(args) == 0 {
		return listSessions(db)
	}
	return printFrames(db, args[0])
}

func listSessions(db *state.DB) error {
	sessions, err := db.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No recorded sessions.")
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		n, err := db.CountFrames(s.ID)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			s.ID,
			s.Demo,
			fmt.Sprintf("%dx%d", s.Width, s.Height),
			strconv.Itoa(n),
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	fmt.Println(sessionTable(rows))
	return nil
}

// sessionTable renders the session list without outer borders so it stays
// easy to grep.
func sessionTable(rows [][]string) string {
	header := lipgloss.NewStyle().Bold(true)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("SESSION", "DEMO", "SIZE", "FRAMES", "STARTED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		String()
}

func printFrames(db *state.DB, id string) error {
	if id == "latest" {
		s, err := db.LatestSession()
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("no recorded sessions")
		}
		id = s.ID
	}

	if framesSeq > 0 {
		f, err := db.GetFrame(id, framesSeq)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("session %s has no frame %d", id, framesSeq)
		}
		printFrame(*f)
		return nil
	}

	frames, err := db.ListFrames(id)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("session %s has no frames", id)
	}
	for _, f := range frames {
		printFrame(f)
	}
	return nil
}

func printFrame(f state.Frame) {
	header := fmt.Sprintf("#%d %dx%d evaluated=%d reused=%d", f.Seq, f.Width, f.Height, f.Evaluated, f.Reused)
	fmt.Println(color.CyanString(header))
	fmt.Println(f.Content)
}
