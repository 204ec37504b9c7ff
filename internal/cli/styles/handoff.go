package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragkit/internal/application/usecase"
)

const previewLimit = 60

// RenderHandoff renders what the isolated page received.
func (t *Theme) RenderHandoff(out *usecase.HandoffOutput) string {
	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	var sb strings.Builder

	token := out.Token
	if token == "" {
		token = "(none pushed)"
	}
	sb.WriteString(fmt.Sprintf("\n  %s token %s\n", iconStyle.Render(IconLink), t.Subtle.Render(token)))

	if !out.Delivered {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			t.WarningStyle.Render(IconWarning),
			t.WarningStyle.Render("nothing delivered to the page")))
		return sb.String()
	}

	ev := out.Event
	sb.WriteString(fmt.Sprintf("  %s %s at %s\n",
		t.SuccessStyle.Render(IconCheck),
		t.Highlight.Render(string(ev.Type)),
		t.Normal.Render(fmt.Sprintf("%g,%g", ev.Client.X, ev.Client.Y))))

	for _, typ := range ev.Transfer.Types() {
		value := ev.Transfer.GetData(typ)
		if typ == "Files" {
			names := make([]string, 0, len(ev.Transfer.Files()))
			for _, f := range ev.Transfer.Files() {
				names = append(names, fmt.Sprintf("%s (%s, %d bytes)", f.Name, f.MIMEType, len(f.Data)))
			}
			value = strings.Join(names, ", ")
		}
		sb.WriteString(fmt.Sprintf("    %s %s\n", t.MutedBadge(typ), t.Normal.Render(truncate(value, previewLimit))))
	}
	return sb.String()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
