package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// CountBadge renders "<n> <noun>" with a naive plural.
func (t *Theme) CountBadge(n int, noun string) string {
	text := fmt.Sprintf("%d %s", n, noun)
	if n != 1 {
		text += "s"
	}
	return t.BadgeMuted.Render(text)
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// ResultBadge renders a committed or cancelled marker.
func (t *Theme) ResultBadge(cancelled bool) string {
	if cancelled {
		return t.StatusBadge("cancelled", t.Background, t.Warning)
	}
	return t.StatusBadge("committed", t.Background, t.Success)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTo(time.Now(), tm)
}

func relativeTo(now, tm time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
