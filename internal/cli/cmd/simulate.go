package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dragkit/internal/application/usecase"
	"github.com/bnema/dragkit/internal/cli/styles"
	"github.com/bnema/dragkit/internal/dnd"
)

var (
	simulateJSON      bool
	simulateNoJournal bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a drag scenario on a virtual clock",
	Long: `Build the zones and items described in a YAML scenario, replay its
pointer steps through the engine and print every published event and
render call in order.

Committed drops are recorded in the drag journal unless --no-journal is set.

Examples:
  dragkit simulate board.yaml
  dragkit simulate board.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "output as JSON")
	simulateCmd.Flags().BoolVar(&simulateNoJournal, "no-journal", false, "do not record drags in the journal")
}

type simulateJSONOutput struct {
	Scenario   string              `json:"scenario"`
	Transcript []string            `json:"transcript"`
	Zones      map[string][]string `json:"zones"`
}

func runSimulate(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	sc, err := usecase.ParseScenario(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var detach []func()
	var hooks []func(context.Context, *dnd.Orchestrator)
	if app.RecordDragUC != nil && !simulateNoJournal {
		if _, err := app.RecordDragUC.Prune(ctx, app.Config.Journal.RetentionDays); err != nil {
			app.Logger().Warn().Err(err).Msg("journal prune failed")
		}
		hooks = append(hooks, func(ctx context.Context, orch *dnd.Orchestrator) {
			detach = append(detach, app.RecordDragUC.Attach(ctx, orch.Bus()))
		})
	}

	uc := usecase.NewSimulateScenarioUseCase(app.SimulateOptions())
	out, err := uc.Execute(ctx, sc, hooks...)
	for _, d := range detach {
		d()
	}
	if err != nil {
		return err
	}

	if simulateJSON {
		lines := make([]string, len(out.Transcript))
		for i, l := range out.Transcript {
			lines[i] = l.String()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(simulateJSONOutput{Scenario: sc.Name, Transcript: lines, Zones: out.Zones})
	}

	renderer := styles.NewSimulateRenderer(app.Theme)
	fmt.Print(renderer.RenderHeader(sc.Name, len(sc.Steps)))
	fmt.Print(renderer.RenderTranscript(out.Transcript))
	fmt.Print(renderer.RenderZones(out.Zones))
	return nil
}
