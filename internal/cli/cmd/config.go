package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/dragkit/internal/cli/styles"
	"github.com/bnema/dragkit/internal/infrastructure/config"
)

var (
	configFormat      string
	configSchemaWrite bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the effective configuration, its file locations and its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file and journal locations",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of the config file, or write it next to the
config file with --write for editor completion.`,
	RunE: runConfigSchema,
}

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Validate the config file on every save",
	Long: `Watch the config file and report each reload until interrupted.
Invalid edits are reported and the previous configuration stays active.`,
	RunE: runConfigWatch,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configWatchCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)

	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml", "output format: yaml or json")
	configSchemaCmd.Flags().BoolVar(&configSchemaWrite, "write", false, "write the schema file next to the config file")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	switch configFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(app.Config)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(app.Config)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", configFormat)
	}
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Print(renderer.RenderPaths(app.Manager.GetConfigFile(), app.Config.Journal.Path, app.Config.Journal.Enabled))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	if configSchemaWrite {
		path, err := config.WriteSchemaFile(filepath.Dir(app.Manager.GetConfigFile()))
		if err != nil {
			fmt.Print(renderer.RenderError(err))
			return nil
		}
		fmt.Print(renderer.RenderSchemaWritten(path))
		return nil
	}

	schema, err := config.JSONSchema()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(schema, '\n'))
	return err
}

func runConfigWatch(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Manager.OnConfigChange(func(cfg *config.Config) {
		fmt.Print(renderer.RenderReloaded(cfg))
	})
	if err := app.Manager.Watch(ctx); err != nil {
		return err
	}

	fmt.Print(renderer.RenderPaths(app.Manager.GetConfigFile(), app.Config.Journal.Path, app.Config.Journal.Enabled))
	<-ctx.Done()
	return nil
}
