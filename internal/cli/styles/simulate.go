package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragkit/internal/application/usecase"
)

// SimulateRenderer renders scenario transcripts.
type SimulateRenderer struct {
	theme *Theme
}

// NewSimulateRenderer creates a new simulate renderer with the given theme.
func NewSimulateRenderer(theme *Theme) *SimulateRenderer {
	return &SimulateRenderer{theme: theme}
}

// RenderHeader renders the scenario title line.
func (r *SimulateRenderer) RenderHeader(name string, steps int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	if name == "" {
		name = "scenario"
	}
	return fmt.Sprintf("\n  %s %s %s\n",
		iconStyle.Render(IconHand),
		r.theme.Title.Render(name),
		r.theme.CountBadge(steps, "step"),
	)
}

// RenderTranscript renders every line, events in accent and render calls muted.
func (r *SimulateRenderer) RenderTranscript(lines []usecase.TranscriptLine) string {
	timeStyle := r.theme.Subtle.Width(8)
	var sb strings.Builder
	for _, l := range lines {
		text := r.theme.Subtle.Render(l.Text)
		if l.Kind == "event" {
			text = r.theme.Highlight.Render(l.Text)
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", timeStyle.Render("+"+l.At.String()), text))
	}
	return sb.String()
}

// RenderZones renders the final item order of every zone.
func (r *SimulateRenderer) RenderZones(zones map[string][]string) string {
	ids := make([]string, 0, len(zones))
	for id := range zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	var sb strings.Builder
	sb.WriteString("\n  " + r.theme.Subtitle.Render("Zones") + "\n")
	for _, id := range ids {
		items := zones[id]
		list := r.theme.Subtle.Render("(empty)")
		if len(items) > 0 {
			list = r.theme.Normal.Render(strings.Join(items, ", "))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", iconStyle.Render(IconBullseye), r.theme.Highlight.Render(id), list))
	}
	return sb.String()
}

// RenderError renders an error message.
func (r *SimulateRenderer) RenderError(err error) string {
	return fmt.Sprintf("\n  %s %s\n", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
