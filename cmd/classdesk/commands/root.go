package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classdesk/internal/api"
	"classdesk/internal/chat"
	"classdesk/internal/config"
	"classdesk/internal/logging"
	"classdesk/internal/tui"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "classdesk",
		Short: "Browse, filter and enroll in fitness classes",
		Long:  `classdesk is a TUI client for the class scheduling service: a weekly calendar with branch and activity filters, session details, one-key enrollment and an assistant chat.`,
		RunE:  runTUI,
	}

	rootCmd.AddCommand(NewDebugCommand())
	rootCmd.AddCommand(NewHoursCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	client := api.New(cfg.BaseURL, logger)
	identity := chat.Identity{MemberID: cfg.MemberID, UserGroup: cfg.UserGroup}

	logger.Info().Str("base_url", cfg.BaseURL).Str("member_id", cfg.MemberID).Msg("starting")
	if err := tui.Run(client, logger, identity); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
