package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/worklens/worklens/internal/activity"
	"github.com/worklens/worklens/internal/config"
	"github.com/worklens/worklens/internal/report"
	"github.com/worklens/worklens/internal/screen"
	"github.com/worklens/worklens/internal/session"
	"github.com/worklens/worklens/internal/tracker"
	"github.com/worklens/worklens/internal/tui"
)

var (
	trackRole        string
	trackInterval    time.Duration
	trackScreenshots bool
	trackFormat      string
	trackOutput      string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Run a tracking session and write a report on stop",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewMarkerStore()
		if err != nil {
			return err
		}

		m, err := store.Load()
		if err != nil && !errors.Is(err, session.ErrNoSession) {
			return err
		}
		if m != nil {
			return fmt.Errorf("session already in progress (started at %s, pid %d)",
				m.StartTime.Format(time.RFC3339), m.PID)
		}

		interactive := term.IsTerminal(os.Stdin.Fd())

		// The TUI owns the terminal, so the session log goes to a file.
		trackLogger := logger
		if interactive {
			if fileLogger, ok := sessionFileLogger(); ok {
				trackLogger = fileLogger
			}
		}

		t := buildTracker(GetConfig(), trackLogger)
		startTime := time.Now()

		// Hot-reload the denylist when the global config changes on disk.
		watchCtx, stopWatch := context.WithCancel(context.Background())
		defer stopWatch()
		if globalPath, err := config.GlobalPath(); err == nil {
			go func() {
				err := config.Watch(watchCtx, globalPath, func(c config.Config) {
					denylist := c.Denylist
					if len(denylist) == 0 {
						denylist = activity.DefaultDenylist
					}
					t.Classifier().SetDenylist(denylist)
					trackLogger.Info().Int("terms", len(denylist)).Msg("denylist reloaded")
				})
				if err != nil {
					trackLogger.Warn().Err(err).Msg("config watcher unavailable")
				}
			}()
		}

		// Advisory marker so `worklens status` can see this session from
		// another process. Best-effort host glue; the engine never reads it.
		marker := &session.Marker{
			ID:        uuid.New().String(),
			Role:      trackRole,
			StartTime: startTime,
			PID:       os.Getpid(),
		}
		if err := store.Save(marker); err != nil {
			trackLogger.Warn().Err(err).Msg("could not write session marker")
		}

		if interactive {
			err = runInteractive(t, trackRole)
		} else {
			err = runHeadless(t, trackRole, trackLogger)
		}
		if err != nil {
			_ = store.Delete()
			return err
		}

		result := t.Stop()
		stopTime := time.Now()

		if err := store.Delete(); err != nil {
			trackLogger.Warn().Err(err).Msg("could not remove session marker")
		}

		outputPath, err := writeReport(result, report.SessionMeta{
			ID:        t.SessionID(),
			Role:      trackRole,
			StartTime: startTime,
			StopTime:  stopTime,
			Duration:  stopTime.Sub(startTime).Round(time.Second).String(),
		})
		if err != nil {
			return err
		}

		fmt.Printf("Session stopped. Report: %s\n", outputPath)
		return nil
	},
}

// buildTracker assembles a Tracker from merged config plus flag overrides.
func buildTracker(cfg config.Config, trackLogger zerolog.Logger) *tracker.Tracker {
	denylist := cfg.Denylist
	if len(denylist) == 0 {
		denylist = nil // NewClassifier selects the built-in defaults
	}

	interval := cfg.Interval()
	if trackInterval > 0 {
		interval = trackInterval
	}

	opts := []tracker.Option{
		tracker.WithClassifier(activity.NewClassifier(denylist)),
		tracker.WithInterval(interval),
		tracker.WithMatchPolicy(cfg.MatchPolicy()),
		tracker.WithLogger(trackLogger),
	}
	if trackScreenshots || cfg.ScreenshotsEnabled() {
		opts = append(opts, tracker.WithCapturer(screen.New(cfg.ScreenshotQuality, trackLogger)))
	}
	return tracker.New(opts...)
}

// runInteractive drives the session through the live TUI; quitting the TUI
// ends the session.
func runInteractive(t *tracker.Tracker, role string) error {
	p := tea.NewProgram(tui.NewLive(t, role), tea.WithAltScreen())

	if err := t.Start(role, func(u tracker.Update) {
		p.Send(tui.UpdateMsg(u))
	}); err != nil {
		return err
	}

	_, err := p.Run()
	return err
}

// runHeadless tracks until SIGINT/SIGTERM, logging each sample.
func runHeadless(t *tracker.Tracker, role string, trackLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := t.Start(role, func(u tracker.Update) {
		trackLogger.Debug().
			Str("app", u.App).
			Str("title", u.Title).
			Bool("relevant", u.Relevant).
			Int("elapsed_seconds", u.ElapsedSeconds).
			Msg("sample")
	}); err != nil {
		return err
	}

	fmt.Println("Session started. Press Ctrl+C to stop.")
	<-ctx.Done()
	return nil
}

// writeReport renders the session result and writes it to the output dir.
func writeReport(result tracker.Result, meta report.SessionMeta) (string, error) {
	r := &report.Report{Session: meta, Result: result}

	format := trackFormat
	if format == "" {
		format = GetConfig().DefaultFormat
	}

	var renderer report.Renderer
	ext := ".md"
	if format == "json" {
		renderer = &report.JSONRenderer{}
		ext = ".json"
	} else {
		renderer = &report.MarkdownRenderer{}
	}

	data, err := renderer.Render(r)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	outputDir := trackOutput
	if outputDir == "" {
		outputDir = GetConfig().OutputDir
	}
	if outputDir == "" {
		outputDir = "."
	}

	filename := "worklens-" + meta.StopTime.Format("2006-01-02T15-04-05") + ext
	outputPath := filepath.Join(outputDir, filename)

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return outputPath, nil
}

// sessionFileLogger opens a debug-level logger writing to the data dir.
func sessionFileLogger() (zerolog.Logger, bool) {
	dir, err := session.DataDir()
	if err != nil {
		return zerolog.Nop(), false
	}
	f, err := os.OpenFile(filepath.Join(dir, "worklens.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), false
	}
	return zerolog.New(f).With().Timestamp().Logger(), true
}

func init() {
	trackCmd.Flags().StringVarP(&trackRole, "role", "r", "general", "Role tag recorded with the session")
	trackCmd.Flags().DurationVar(&trackInterval, "interval", 0, "Sampling interval (overrides config)")
	trackCmd.Flags().BoolVar(&trackScreenshots, "screenshots", false, "Capture a screenshot per relevant sample")
	trackCmd.Flags().StringVar(&trackFormat, "format", "", "Report format: markdown or json (overrides config)")
	trackCmd.Flags().StringVarP(&trackOutput, "output", "o", "", "Report output directory (overrides config)")
	rootCmd.AddCommand(trackCmd)
}
