package styles

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// JournalTableColumns returns columns for the drag journal table.
func JournalTableColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 10},
		{Title: "Source", Width: 16},
		{Title: "From", Width: 12},
		{Title: "To", Width: 12},
		{Title: "Index", Width: 8},
		{Title: "Kinds", Width: 16},
		{Title: "Took", Width: 8},
		{Title: "Result", Width: 10},
	}
}

// JournalRow converts a journal entry to a table row.
func JournalRow(e entity.JournalEntry) table.Row {
	return table.Row{
		RelativeTime(e.EndedAt),
		string(e.Source),
		string(e.FromZone),
		dash(string(e.ToZone)),
		IndexLabel(e.Index, e.Position),
		KindsLabel(e.Kinds),
		e.Duration().Round(time.Millisecond).String(),
		resultLabel(e.Cancelled),
	}
}

// IndexLabel renders an insertion index with its indicator position.
func IndexLabel(index *int, pos entity.DropPosition) string {
	if index == nil {
		return "-"
	}
	label := strconv.Itoa(*index)
	if pos != entity.PositionNone {
		label += " " + pos.String()
	}
	return label
}

// KindsLabel joins payload kinds for display.
func KindsLabel(kinds []entity.PayloadKind) string {
	if len(kinds) == 0 {
		return "-"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}

func resultLabel(cancelled bool) string {
	if cancelled {
		return "cancelled"
	}
	return "committed"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
