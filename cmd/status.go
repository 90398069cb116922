package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/worklens/worklens/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a tracking session is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewMarkerStore()
		if err != nil {
			return err
		}

		m, err := store.Load()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				cmd.Println("no active session")
				return nil
			}
			return err
		}

		cmd.Printf("Role: %s\n", m.Role)
		cmd.Printf("Started: %s\n", m.StartTime.Format(time.RFC3339))
		cmd.Printf("Duration: %s\n", time.Since(m.StartTime).Round(time.Second).String())
		cmd.Printf("PID: %d\n", m.PID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
