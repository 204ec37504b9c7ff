// Package cmd provides Cobra CLI commands for dragkit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dragkit/internal/cli"
	"github.com/bnema/dragkit/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "dragkit",
		Short: "Drag-and-drop orchestration engine toolkit",
		Long: `dragkit - a drag-and-drop orchestration engine.

Sources, ordered drop zones and areas coordinated by a single drag
operation, with a bridge that carries drops across isolated rendering
contexts through one-time host tokens.

The commands exercise the engine outside a UI:
  - simulate    replay a YAML scenario on a virtual clock
  - resolve     compute an insertion index for a pointer
  - handoff     run a host to page drop over the wire protocol
  - journal     browse and prune recorded drags
  - config      inspect configuration and its JSON schema`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile)
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

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/dragkit/config.toml)")
}

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
