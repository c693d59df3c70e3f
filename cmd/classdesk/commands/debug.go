package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"classdesk/internal/api"
	"classdesk/internal/availability"
	"classdesk/internal/config"
	"classdesk/internal/schedule"
)

var (
	debugDate      string
	debugBranches  []string
	debugBuckets   []string
	debugOpenSpots bool
)

// NewDebugCommand creates the debug-calendar command
func NewDebugCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug-calendar",
		Short: "Print a week of sessions without the TUI",
		RunE:  runDebugCalendar,
	}

	cmd.Flags().StringVar(&debugDate, "date", "", "Any date inside the week to show (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&debugBranches, "branch", nil, "Branch ids to filter by")
	cmd.Flags().StringSliceVar(&debugBuckets, "bucket", nil, "Activity buckets to filter by")
	cmd.Flags().BoolVar(&debugOpenSpots, "open-spots", false, "Only sessions with open spots")

	return cmd
}

func runDebugCalendar(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	anchor := time.Now()
	if debugDate != "" {
		anchor, err = time.Parse("2006-01-02", debugDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	window := schedule.WeekOf(anchor)
	client := api.New(cfg.BaseURL, zerolog.Nop())

	sessions, err := client.Calendar(cmd.Context(), api.CalendarQuery{
		Start:     window.StartDate(),
		End:       window.EndDate(),
		BranchIDs: debugBranches,
		Buckets:   debugBuckets,
		HasSpots:  debugOpenSpots,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch calendar: %w", err)
	}

	fmt.Printf("Sessions %s to %s:\n", window.StartDate(), window.EndDate())
	fmt.Println("=========================")
	if len(sessions) == 0 {
		fmt.Println("No matching sessions")
		return nil
	}

	for i, s := range sessions {
		tier := availability.ForSession(s)
		fmt.Printf("%d. %s (%s)\n", i+1, s.ClassName, s.SessionID)
		fmt.Printf("   Branch: %s\n", s.BranchName)
		fmt.Printf("   When: %s to %s\n", s.Start.Format("Mon 2006-01-02 15:04"), s.End.Format("15:04"))
		fmt.Printf("   Spots: %d/%d enrolled, %d left (%s)\n", s.Enrolled, s.Capacity, s.Remaining(), tier)
		fmt.Println()
	}
	return nil
}
