package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dragkit/internal/application/usecase"
	"github.com/bnema/dragkit/internal/cli/model"
	"github.com/bnema/dragkit/internal/cli/styles"
)

var (
	journalLimit       int
	journalJSON        bool
	journalInteractive bool
	journalPruneDays   int
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse recorded drags",
	Long: `List the most recent drag gestures from the journal, newest first.

Use --interactive for a scrollable table.`,
	RunE: runJournal,
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old journal entries",
	Long:  `Delete entries older than --days, defaulting to journal.retention_days.`,
	RunE:  runJournalPrune,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalPruneCmd)

	journalCmd.Flags().IntVar(&journalLimit, "limit", usecase.DefaultJournalLimit, "maximum entries to show")
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "output as JSON")
	journalCmd.Flags().BoolVarP(&journalInteractive, "interactive", "i", false, "browse in a table")
	journalPruneCmd.Flags().IntVar(&journalPruneDays, "days", -1, "retention in days (default from config)")
}

type journalJSONEntry struct {
	OperationID string   `json:"operation_id"`
	Source      string   `json:"source"`
	FromZone    string   `json:"from_zone"`
	ToZone      string   `json:"to_zone,omitempty"`
	Area        string   `json:"area,omitempty"`
	Index       *int     `json:"index,omitempty"`
	Position    string   `json:"position"`
	Kinds       []string `json:"kinds"`
	Cancelled   bool     `json:"cancelled"`
	StartedAt   string   `json:"started_at"`
	EndedAt     string   `json:"ended_at"`
}

func runJournal(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewJournalRenderer(app.Theme)
	if app.ListJournalUC == nil {
		fmt.Print(renderer.RenderDisabled())
		return nil
	}

	if journalInteractive {
		m := model.NewJournalModel(app.Ctx(), app.Theme, app.ListJournalUC, journalLimit)
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}

	out, err := app.ListJournalUC.Execute(app.Ctx(), journalLimit)
	if err != nil {
		return err
	}

	if journalJSON {
		entries := make([]journalJSONEntry, len(out.Entries))
		for i, e := range out.Entries {
			kinds := make([]string, len(e.Kinds))
			for j, k := range e.Kinds {
				kinds[j] = string(k)
			}
			entries[i] = journalJSONEntry{
				OperationID: string(e.OperationID),
				Source:      string(e.Source),
				FromZone:    string(e.FromZone),
				ToZone:      string(e.ToZone),
				Area:        string(e.Area),
				Index:       e.Index,
				Position:    e.Position.String(),
				Kinds:       kinds,
				Cancelled:   e.Cancelled,
				StartedAt:   e.StartedAt.Format("2006-01-02T15:04:05.000Z07:00"),
				EndedAt:     e.EndedAt.Format("2006-01-02T15:04:05.000Z07:00"),
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Print(renderer.RenderSummary(out))
	fmt.Print(renderer.RenderEntries(out))
	return nil
}

func runJournalPrune(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewJournalRenderer(app.Theme)
	if app.RecordDragUC == nil {
		fmt.Print(renderer.RenderDisabled())
		return nil
	}

	days := journalPruneDays
	if days < 0 {
		days = app.Config.Journal.RetentionDays
	}
	deleted, err := app.RecordDragUC.Prune(app.Ctx(), days)
	if err != nil {
		return err
	}
	fmt.Print(renderer.RenderPruned(deleted, days))
	return nil
}
