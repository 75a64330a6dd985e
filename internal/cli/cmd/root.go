// Package cmd provides Cobra CLI commands for stagedock.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/stagedock/internal/cli"
	"github.com/bnema/stagedock/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "stagedock",
		Short: "A dockable panel layout engine with stage navigation",
		Long: `Stagedock manages recursive panel layouts: splits, tab groups, and
swipeable stages, with snapshots persisted to a local database.

Use the subcommands to inspect and manage saved layouts, or run
'stagedock layouts' for the interactive browser.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "schema", "version", "inspect", "validate", "path":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("stagedock %s (%s, built %s)\n",
			buildInfo.Version, buildInfo.Commit, buildInfo.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
