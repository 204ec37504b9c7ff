package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragkit/internal/application/usecase"
)

// JournalRenderer renders the drag journal as plain styled lines.
type JournalRenderer struct {
	theme *Theme
}

// NewJournalRenderer creates a new journal renderer with the given theme.
func NewJournalRenderer(theme *Theme) *JournalRenderer {
	return &JournalRenderer{theme: theme}
}

// RenderSummary renders the header with committed and cancelled counts.
func (r *JournalRenderer) RenderSummary(out usecase.ListJournalOutput) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s %s %s %s\n",
		iconStyle.Render(IconDatabase),
		r.theme.Title.Render("Drag journal"),
		r.theme.CountBadge(out.Committed, "commit"),
		r.theme.CountBadge(out.Cancelled, "cancel"),
	)
}

// RenderEntries renders one line per entry, newest first.
func (r *JournalRenderer) RenderEntries(out usecase.ListJournalOutput) string {
	if len(out.Entries) == 0 {
		return "  " + r.theme.Subtle.Render("No drags recorded yet") + "\n"
	}

	timeStyle := r.theme.Subtle.Width(10)
	var sb strings.Builder
	for _, e := range out.Entries {
		route := string(e.FromZone)
		if e.ToZone != "" {
			route += " " + IconArrow + " " + string(e.ToZone)
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s %s %s\n",
			timeStyle.Render(RelativeTime(e.EndedAt)),
			r.theme.ResultBadge(e.Cancelled),
			r.theme.Highlight.Render(string(e.Source)),
			r.theme.Normal.Render(route),
			r.theme.Subtle.Render(IndexLabel(e.Index, e.Position)),
		))
	}
	return sb.String()
}

// RenderPruned renders the result of a prune.
func (r *JournalRenderer) RenderPruned(deleted int64, retentionDays int) string {
	if retentionDays <= 0 {
		return fmt.Sprintf("\n  %s %s\n",
			r.theme.Subtle.Render(IconInfo),
			r.theme.Subtle.Render("retention is 0, nothing pruned"))
	}
	return fmt.Sprintf("\n  %s pruned %s older than %s\n",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(fmt.Sprintf("%d", deleted)),
		r.theme.Normal.Render(fmt.Sprintf("%d days", retentionDays)),
	)
}

// RenderDisabled tells the user the journal is turned off.
func (r *JournalRenderer) RenderDisabled() string {
	return fmt.Sprintf("\n  %s %s\n",
		r.theme.WarningStyle.Render(IconWarning),
		r.theme.Normal.Render("journal is disabled (journal.enabled = false)"))
}
