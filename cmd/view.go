package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worklens/worklens/internal/report"
	"github.com/worklens/worklens/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "View a session report file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}

		var parser report.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			parser = &report.JSONParser{}
		default:
			parser = &report.MarkdownParser{}
		}

		r, err := parser.Parse(data)
		if err != nil {
			return err
		}

		if plainOutput {
			printReport(r)
			return nil
		}
		return tui.RunView(r, path)
	},
}

// printReport writes a plain-text summary to stdout.
func printReport(r *report.Report) {
	fmt.Println("## Session")
	fmt.Printf("  Role:      %s\n", r.Session.Role)
	fmt.Printf("  Started:   %s\n", r.Session.StartTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  Stopped:   %s\n", r.Session.StopTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  Duration:  %s\n", r.Session.Duration)
	fmt.Println()

	fmt.Println("## Applications")
	if len(r.Result.Summary) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, s := range r.Result.Summary {
			fmt.Printf("  %-24s %ds\n", s.App, s.TotalDurationSeconds)
			if len(s.Files) > 0 {
				fmt.Printf("    files:  %s\n", strings.Join(s.Files, ", "))
			}
		}
	}
	fmt.Println()

	fmt.Println("## Activities")
	if len(r.Result.Activities) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, e := range r.Result.Activities {
			fmt.Printf("  [%s] %s — %s (%ds)\n",
				e.StartedAt.Format("15:04:05"), e.App, e.Title, e.DurationSeconds)
		}
	}
	fmt.Println()

	fmt.Println("## Notes")
	if len(r.Result.Notes) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, n := range r.Result.Notes {
			fmt.Printf("  [%s] %s\n", n.Timestamp.Format("2006-01-02 15:04:05"), n.Text)
		}
	}
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print a plain-text summary instead of the TUI")
	rootCmd.AddCommand(viewCmd)
}
