// Package cmd defines and implements the CLI commands for the docketsync
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docketsync",
		Short: "Synchronizes public comments from a regulatory docket API.",
		Long: `docketsync crawls the public comment listing of a regulatory docket,
fetches full detail and attachments for every comment it has not seen
before, and persists the accumulated table to a SQLite file and/or CSV.
Re-running after a partial failure resumes where the saved table left off.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newSyncCmd())
	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
