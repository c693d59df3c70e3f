package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"classdesk/internal/api"
	"classdesk/internal/config"
	"classdesk/internal/tui"
)

var hoursNow bool

// NewHoursCommand creates the hours command
func NewHoursCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours <branch-id> [date]",
		Short: "Look up a branch's opening hours",
		Long: `Look up a branch's opening hours in a non-interactive format.
With only a branch id: shows today's hours
With a date (YYYY-MM-DD): shows hours for that date
With --now: reports whether the branch is open right now`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runHours,
	}

	cmd.Flags().BoolVar(&hoursNow, "now", false, "Report whether the branch is open right now")

	return cmd
}

func runHours(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	branchID := args[0]
	client := api.New(cfg.BaseURL, zerolog.Nop())

	if hoursNow {
		status, err := client.OpenNow(cmd.Context(), branchID)
		if err != nil {
			return fmt.Errorf("failed to check open status: %w", err)
		}
		if status.Open {
			fmt.Printf("%s is open (as of %s)\n", branchID, status.Now)
		} else {
			fmt.Printf("%s is closed (as of %s)\n", branchID, status.Now)
		}
		return nil
	}

	date := time.Now().Format("2006-01-02")
	if len(args) == 2 {
		if _, err := time.Parse("2006-01-02", args[1]); err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		date = args[1]
	}

	hours, err := client.Hours(cmd.Context(), branchID, date)
	if err != nil {
		return fmt.Errorf("failed to fetch hours: %w", err)
	}

	fmt.Println(tui.FormatHours(hours))
	return nil
}
